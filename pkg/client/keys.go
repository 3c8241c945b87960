package client

// Query cache keys. Invalidation is by prefix, so "posts" never matches "post/...".
const (
	PostsKey       = "posts"
	CurrentUserKey = "auth/user"
	ReportsKey     = "admin/reports"
)

func EngagementKey(postId string) string {
	return "post/" + postId + "/engage/user"
}

func CommentsKey(postId string) string {
	return "post/" + postId + "/comments"
}
