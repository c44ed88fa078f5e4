package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/api/validator"
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/chat"
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/feed"
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/friends"
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/hub"
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/moderation"
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/notify"
)

// A Broadcaster pushes live events to connected clients.
type Broadcaster interface {
	Broadcast(msg hub.Message)
}

// API provides the REST endpoints for the application.
type API struct {
	Logger     *slog.Logger
	Feed       *feed.Feed
	Composer   *feed.Composer
	Posts      *feed.Handler
	Friends    *friends.Service
	Chat       *chat.Service
	Moderation *moderation.Service
	Hub        Broadcaster  // optional; served on /ws if it is an http.Handler
	Val        *validator.Validator
	PostLimit  *RateLimiter // optional

	once sync.Once
	mux  *http.ServeMux
}

func (a *API) setupRoutes() {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /feed", a.getFeed)
	mux.HandleFunc("GET /composer", a.getComposer)
	mux.HandleFunc("PUT /composer/photo", a.putPhoto)
	mux.HandleFunc("PUT /composer/tags", a.putTags)
	mux.HandleFunc("PUT /composer/feeling", a.putFeeling)
	mux.HandleFunc("POST /posts", a.limit(a.createPost))
	mux.HandleFunc("DELETE /posts/{postID}", a.deletePost)
	mux.HandleFunc("POST /posts/{postID}/like", a.toggleLike)
	mux.HandleFunc("POST /posts/{postID}/comment-panel", a.toggleComments)
	mux.HandleFunc("POST /posts/{postID}/comments", a.createComment)
	mux.HandleFunc("POST /posts/{postID}/share", a.sharePost)

	mux.HandleFunc("GET /friends/requests", a.listFriendRequests)
	mux.HandleFunc("POST /friends/requests/{name}/confirm", a.confirmFriendRequest)
	mux.HandleFunc("DELETE /friends/requests/{name}", a.deleteFriendRequest)
	mux.HandleFunc("POST /friends/suggestions/{name}/request", a.sendFriendRequest)

	mux.HandleFunc("GET /conversations", a.listConversations)
	mux.HandleFunc("POST /conversations/{conversationID}/open", a.openConversation)
	mux.HandleFunc("POST /conversations/{conversationID}/messages", a.sendMessage)

	mux.HandleFunc("GET /admin/users", a.listUsers)
	mux.HandleFunc("POST /admin/users/{userID}/ban", a.banUser)
	mux.HandleFunc("POST /admin/users/{userID}/unban", a.unbanUser)
	mux.HandleFunc("DELETE /admin/users/{userID}", a.deleteUser)
	mux.HandleFunc("GET /admin/posts", a.listReportedPosts)
	mux.HandleFunc("GET /admin/posts/{postID}", a.getReportedPost)
	mux.HandleFunc("DELETE /admin/posts/{postID}", a.deleteReportedPost)
	mux.HandleFunc("POST /admin/posts/{postID}/dismiss", a.dismissReports)

	if h, ok := a.Hub.(http.Handler); ok {
		mux.Handle("GET /ws", h)
	}

	a.mux = mux
}

func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.once.Do(a.setupRoutes)
	a.Logger.Info("Request received", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	a.mux.ServeHTTP(w, r)
}

func (a *API) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.Logger.Error("Could not encode JSON body", "error", err.Error())
	}
}

func (a *API) respondError(w http.ResponseWriter, status int, err error, msg string) {
	type response struct {
		Error string `json:"error"`
	}
	a.Logger.Error("Error", "error", err.Error())
	a.respond(w, status, response{Error: msg})
}

func (a *API) validateBody(w http.ResponseWriter, s any) bool {
	errs := a.Val.ValidateStruct(s)
	if len(errs) > 0 {
		a.respond(w, http.StatusBadRequest, &validationResponse{
			Errors: errs,
		})
		return false
	}
	return true
}

type validationResponse struct {
	Errors []validator.ValidationError `json:"errors"`
}

// decode reads a JSON request body into dst and validates it. It writes the
// error response itself and reports whether the handler may continue.
func (a *API) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		a.respondError(w, http.StatusBadRequest, err, "Could not decode request body")
		return false
	}
	if err := r.Body.Close(); err != nil {
		a.respondError(w, http.StatusInternalServerError, err, "Could not close request body")
		return false
	}
	return a.validateBody(w, dst)
}

func (a *API) broadcast(eventType string, data any) {
	if a.Hub != nil {
		a.Hub.Broadcast(hub.Message{Type: eventType, Data: data})
	}
}

// confirmation answers prompts with the request's confirm query parameter.
// Anything other than a true value declines.
func confirmation(r *http.Request) notify.Confirmer {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return notify.Answer(ok)
}

type confirmResponse struct {
	Confirmed bool `json:"confirmed"`
}
