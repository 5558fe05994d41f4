package routes

import (
	authhandler "Bislei/internal/api/handlers/auth"
	"Bislei/internal/api/handlers/comment"
	"Bislei/internal/api/handlers/like"
	"Bislei/internal/api/handlers/post"
	"Bislei/internal/api/handlers/profile"
	"Bislei/internal/api/handlers/spot"
	"Bislei/internal/api/handlers/subscribe"
	"Bislei/internal/api/middleware"
	"Bislei/internal/core/auth"
	"Bislei/internal/core/comments"
	"Bislei/internal/core/likes"
	"Bislei/internal/core/posts"
	"Bislei/internal/core/profiles"
	"Bislei/internal/core/spots"
	"Bislei/internal/events"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Services bundles everything the route tree needs
type Services struct {
	Auth     auth.Service
	Posts    posts.Service
	Likes    likes.Service
	Comments comments.Service
	Profiles profiles.Service
	Cache    *profiles.Cache
	Spots    spots.Service
	Hub      *events.Hub
	Logger   *slog.Logger
}

// Register mounts every endpoint on the router
func Register(r chi.Router, svc Services, authMw *middleware.AuthMiddleware, blobRoot string) {
	authHandler := authhandler.New(svc.Auth)
	uploadHandler := post.NewUploadPostHandler(svc.Posts)
	postHandler := post.New(svc.Posts)
	likeHandler := like.New(svc.Likes)
	commentHandler := comment.New(svc.Comments)
	profileHandler := profile.New(svc.Profiles, svc.Cache)
	spotHandler := spot.New(svc.Spots)
	subscribeHandler := subscribe.New(svc.Hub, svc.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)

		// Public reads
		r.Get("/feed", postHandler.HandleFeed)
		r.Get("/posts/{postID}", postHandler.HandleGetPost)
		r.Get("/posts/{postID}/comments", commentHandler.HandleListComments)
		r.Get("/profiles/{userID}", profileHandler.HandleGetProfile)
		r.Get("/spots", spotHandler.HandleListSpots)
		r.Get("/spots/{spotID}", spotHandler.HandleGetSpot)

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(authMw.RequireAuth)
			r.Post("/posts", uploadHandler.HandleUploadPost)
			r.Get("/posts/mine", postHandler.HandleOwnPosts)
			r.Delete("/posts/{postID}", postHandler.HandleDeletePost)
			r.Post("/posts/{postID}/like", likeHandler.HandleToggleLike)
			r.Get("/likes", likeHandler.HandleLikedPosts)
			r.Post("/posts/{postID}/comments", commentHandler.HandleAddComment)
			r.Get("/profile", profileHandler.HandleGetOwnProfile)
			r.Put("/profile", profileHandler.HandleUpdateProfile)
		})
	})

	r.With(authMw.RequireAuth).Get("/ws/subscribe", subscribeHandler.HandleSubscribe)

	// Uploaded images are served straight off disk
	r.Handle("/blobs/*", http.StripPrefix("/blobs/",
		http.FileServer(http.Dir(blobRoot))))
}
