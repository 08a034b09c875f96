package router

import (
	"vidhub-go/internal/api/handler"

	"github.com/gin-gonic/gin"
)

// Handlers 所有业务 Handler
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Video        *handler.VideoHandler
	Comment      *handler.CommentHandler
	Tweet        *handler.TweetHandler
	Like         *handler.LikeHandler
	Subscription *handler.SubscriptionHandler
	Playlist     *handler.PlaylistHandler
}

// Setup 注册所有业务路由。authRequired 拒绝匿名请求，optionalAuth 仅识别身份。
func Setup(r *gin.Engine, h Handlers, authRequired, optionalAuth gin.HandlerFunc) {
	v1 := r.Group("/api/v1")

	// --- 用户模块 ---
	users := v1.Group("/users")
	{
		users.POST("/register", h.Auth.Register)
		users.POST("/login", h.Auth.Login)
		users.POST("/refresh-token", h.Auth.Refresh)

		authed := users.Group("", authRequired)
		{
			authed.POST("/logout", h.Auth.Logout)
			authed.POST("/change-password", h.Auth.ChangePassword)
			authed.GET("/get-profile", h.User.GetProfile)
			authed.PATCH("/update-profile", h.User.UpdateProfile)
			authed.PATCH("/profile-image", h.User.UpdateAvatar)
			authed.PATCH("/cover-image", h.User.UpdateCover)
			authed.GET("/user-channel-profile/:username", h.User.ChannelProfile)
			authed.GET("/watch-history", h.User.WatchHistory)
		}
	}

	// --- 视频模块 ---
	videos := v1.Group("/videos")
	{
		videos.GET("/get-videos", optionalAuth, h.Video.GetVideos)

		authed := videos.Group("", authRequired)
		{
			authed.POST("/upload-video", h.Video.Upload)
			authed.GET("/get-video/:videoId", h.Video.GetVideo)
			authed.PATCH("/update-video/:videoId", h.Video.UpdateVideo)
			authed.PATCH("/toggle-publish/:videoId", h.Video.TogglePublish)
			authed.DELETE("/video/:videoId", h.Video.DeleteVideo)
		}
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments")
	{
		comments.GET("/:videoId", optionalAuth, h.Comment.ListByVideo)
		comments.POST("/:videoId", authRequired, h.Comment.Add)
		comments.PATCH("/c/:commentId", authRequired, h.Comment.Update)
		comments.DELETE("/c/:commentId", authRequired, h.Comment.Delete)
	}

	// --- 点赞模块 ---
	likes := v1.Group("/likes", authRequired)
	{
		likes.POST("/video-like/:videoId", h.Like.ToggleVideoLike)
		likes.POST("/comment-like/:commentId", h.Like.ToggleCommentLike)
		likes.POST("/tweet-like/:tweetId", h.Like.ToggleTweetLike)
		likes.GET("/get-liked-videos", h.Like.LikedVideos)
	}

	// --- 订阅模块 ---
	subscriptions := v1.Group("/subscriptions", authRequired)
	{
		subscriptions.POST("/:channelId", h.Subscription.Toggle)
		subscriptions.GET("/subscribers/:channelId", h.Subscription.Subscribers)
		subscriptions.GET("/channels/:subscriberId", h.Subscription.Channels)
	}

	// --- 动态模块 ---
	tweets := v1.Group("/tweets")
	{
		tweets.GET("", optionalAuth, h.Tweet.List)
		tweets.GET("/", optionalAuth, h.Tweet.List)
		tweets.GET("/:userId", optionalAuth, h.Tweet.ListByUser)
		tweets.POST("/create", authRequired, h.Tweet.Create)
		tweets.PATCH("/update/:tweetId", authRequired, h.Tweet.Update)
		tweets.DELETE("/delete/:tweetId", authRequired, h.Tweet.Delete)
	}

	// --- 播放列表模块 ---
	playlists := v1.Group("/playlists", authRequired)
	{
		playlists.POST("", h.Playlist.Create)
		playlists.GET("/:playlistId", h.Playlist.Get)
		playlists.PATCH("/:playlistId", h.Playlist.Update)
		playlists.DELETE("/:playlistId", h.Playlist.Delete)
		playlists.PATCH("/add/:videoId/:playlistId", h.Playlist.AddVideo)
		playlists.PATCH("/remove/:videoId/:playlistId", h.Playlist.RemoveVideo)
		playlists.GET("/user/:userId", h.Playlist.ListByUser)
	}
}
