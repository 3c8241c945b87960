package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/gorilla/mux"
	_ "github.com/jackc/pgx/v4/stdlib"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ascended/pkg/engagement"
	"ascended/pkg/logger"
	"ascended/pkg/middleware"
	"ascended/pkg/post"
	"ascended/pkg/report"
	"ascended/pkg/sessions"
	"ascended/pkg/user"
	"ascended/pkg/user/api"
)

func init() {
	rand.Seed(time.Now().UnixNano())
}

func main() {
	withSeed := flag.Bool("seed", false, "fill the databases with fake users, posts and comments")
	flag.Parse()

	cfg := readConfig()
	zlog := logger.Run(cfg["LOG_LEVEL"])
	defer zlog.Sync() //nolint:errcheck

	db, err := sql.Open("pgx", cfg["POSTGRES_DSN"])
	if err != nil {
		zlog.Fatalf("main: unable to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		zlog.Fatalf("main: unable to reach PostgreSQL: %v", err)
	}

	initCtx, initCtxCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer initCtxCancel()
	if err := migrate(initCtx, db); err != nil {
		zlog.Fatal(err)
	}

	redisPool := &redis.Pool{
		MaxIdle:     8,
		IdleTimeout: 4 * time.Minute,
		Dial: func() (redis.Conn, error) {
			return redis.DialURL(cfg["REDIS_ADDR"])
		},
	}
	defer redisPool.Close()
	redisConn := redisPool.Get()
	if _, err := redisConn.Do("PING"); err != nil {
		zlog.Fatalf("main: can't connect to Redis: %v", err)
	}
	redisConn.Close()

	mongoClient, err := mongo.Connect(initCtx, options.Client().ApplyURI(cfg["MONGODB_URI"]))
	if err != nil {
		zlog.Fatalf("main: can't connect to MongoDB: %v", err)
	}
	if err := mongoClient.Ping(initCtx, nil); err != nil {
		zlog.Fatalf("main: unable to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			zlog.Errorf("main: failed disconnecting from MongoDB: %v", err)
		}
	}()

	postsRepo := post.NewPostRepo(mongoClient.Database(cfg["MONGODB_DB"]).Collection("posts"))
	usersRepo := user.NewUserRepo(db)
	engagementRepo := engagement.NewRepo(db)
	reportRepo := report.NewRepo(db)
	sessionManager := sessions.NewSessionManager(cfg["SECRET_KEY"], redisPool)
	remover := post.NewRemover(postsRepo, engagementRepo)

	if *withSeed {
		seed(initCtx, usersRepo, postsRepo, engagementRepo)
	}

	userHandler := api.NewUserHandler(usersRepo, sessionManager, cfg.Int("STARTING_ENERGY"))
	postHandler := post.NewPostHandler(postsRepo, engagementRepo, remover)
	engagementHandler := engagement.NewEngagementHandler(engagementRepo, postsRepo)
	reportHandler := report.NewReportHandler(reportRepo, remover)

	r := mux.NewRouter()
	apiRouter := r.PathPrefix("/api").Subrouter()

	// User
	apiRouter.HandleFunc("/register", userHandler.Register).Methods("POST")
	apiRouter.HandleFunc("/login", userHandler.LogIn).Methods("POST")
	apiRouter.HandleFunc("/auth/user", middleware.RequireUser(userHandler.Me)).Methods("GET")

	// Posts
	apiRouter.HandleFunc("/posts", postHandler.List).Methods("GET")
	apiRouter.HandleFunc("/posts", middleware.RequireUser(postHandler.Add)).Methods("POST")
	apiRouter.HandleFunc("/posts/{post_id}", postHandler.Get).Methods("GET")
	apiRouter.HandleFunc("/posts/{post_id}", middleware.RequireUser(postHandler.Delete)).Methods("DELETE")

	// Engagements
	apiRouter.HandleFunc("/posts/{post_id}/engage/user", middleware.RequireUser(engagementHandler.UserEngagements)).Methods("GET")
	apiRouter.HandleFunc("/posts/{post_id}/engage", middleware.RequireUser(engagementHandler.Add)).Methods("POST")
	apiRouter.HandleFunc("/posts/{post_id}/engage/{type}", middleware.RequireUser(engagementHandler.Remove)).Methods("DELETE")

	// Comments
	apiRouter.HandleFunc("/posts/{post_id}/comments", postHandler.ListComments).Methods("GET")
	apiRouter.HandleFunc("/posts/{post_id}/comments", middleware.RequireUser(postHandler.AddComment)).Methods("POST")

	// Moderation
	apiRouter.HandleFunc("/reports", middleware.RequireUser(reportHandler.Create)).Methods("POST")
	apiRouter.HandleFunc("/admin/reports", middleware.RequireModerator(reportHandler.List)).Methods("GET")
	apiRouter.HandleFunc("/admin/reports/bulk", middleware.RequireModerator(reportHandler.Bulk)).Methods("POST")
	apiRouter.HandleFunc("/admin/reports/{report_id}", middleware.RequireModerator(reportHandler.Update)).Methods("PATCH")

	logMiddleware := middleware.NewLoggingMiddleware(zlog)
	r.Use(logMiddleware.SetupTracing)
	r.Use(logMiddleware.SetupLogging)
	r.Use(logMiddleware.AccessLog)

	auth := middleware.NewAuthMiddleware(sessionManager, usersRepo)
	r.Use(auth.Middleware)

	srv := &http.Server{
		Addr:              ":" + cfg["PORT"],
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	zlog.Infof("Serving at http://localhost:%s/", cfg["PORT"])
	log.Fatalln(srv.ListenAndServe())
}
