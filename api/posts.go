package api

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/feed"
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/hub"
)

// maxPhotoSize is the largest accepted photo upload.
const maxPhotoSize = 10 << 20

const photoTooLarge = "Photo must be at most 10 MB"

func (a *API) getFeed(w http.ResponseWriter, r *http.Request) {
	children := a.Feed.Children()
	nodes := make([]Node, len(children))
	for i, n := range children {
		nodes[i] = Node{Kind: n.Kind}
		if n.Post != nil {
			p := newPost(*n.Post)
			nodes[i].Post = &p
		}
	}

	type response struct {
		Children []Node `json:"children"`
	}
	a.respond(w, http.StatusOK, response{Children: nodes})
}

func (a *API) composerState() Composer {
	return Composer{Attachment: a.Composer.Attachment(), Preview: a.Composer.Preview()}
}

func (a *API) getComposer(w http.ResponseWriter, r *http.Request) {
	a.respond(w, http.StatusOK, a.composerState())
}

func (a *API) putPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoSize+1<<20)
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.respondError(w, http.StatusRequestEntityTooLarge, err, photoTooLarge)
			return
		}
		a.respondError(w, http.StatusBadRequest, err, "Could not parse upload")
		return
	}
	file, _, err := r.FormFile("photo")
	if err != nil {
		a.respondError(w, http.StatusBadRequest, err, "Missing photo")
		return
	}
	defer file.Close()

	b, err := io.ReadAll(io.LimitReader(file, maxPhotoSize+1))
	if err != nil {
		a.respondError(w, http.StatusBadRequest, err, "Could not read photo")
		return
	}
	if len(b) > maxPhotoSize {
		a.respondError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("photo exceeds %d bytes", maxPhotoSize), photoTooLarge)
		return
	}
	mt := mimetype.Detect(b)
	if !strings.HasPrefix(mt.String(), "image/") {
		a.respondError(w, http.StatusBadRequest, fmt.Errorf("unsupported type %s", mt), "Photo must be an image")
		return
	}

	a.Composer.AttachPhoto("data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(b))
	a.respond(w, http.StatusOK, a.composerState())
}

func (a *API) putTags(w http.ResponseWriter, r *http.Request) {
	var body tagList
	if !a.decode(w, r, &body) {
		return
	}
	a.Composer.TagFriends(body.Friends)
	a.respond(w, http.StatusOK, a.composerState())
}

func (a *API) putFeeling(w http.ResponseWriter, r *http.Request) {
	var body feeling
	if !a.decode(w, r, &body) {
		return
	}
	a.Composer.SetFeeling(body.Feeling)
	a.respond(w, http.StatusOK, a.composerState())
}

func (a *API) createPost(w http.ResponseWriter, r *http.Request) {
	var body postText
	if !a.decode(w, r, &body) {
		return
	}
	p, err := a.Composer.Submit(r.Context(), body.Text)
	if errors.Is(err, feed.ErrEmptyPost) {
		a.respondError(w, http.StatusBadRequest, err, feed.EmptyPostWarning)
		return
	}
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, err, "Could not create post")
		return
	}

	out := newPost(p)
	a.broadcast(hub.EventNewPost, out)
	a.respond(w, http.StatusCreated, out)
}

func (a *API) deletePost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("postID")
	ok, err := a.Feed.Delete(r.Context(), id, confirmation(r))
	if errors.Is(err, feed.ErrPostNotFound) {
		a.respondError(w, http.StatusNotFound, err, "Post not found")
		return
	}
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, err, "Could not delete post")
		return
	}
	if ok {
		a.broadcast(hub.EventDelete, deleteEvent{ID: id})
	}
	a.respond(w, http.StatusOK, confirmResponse{Confirmed: ok})
}

// postAction runs fn on the post named in the request path and responds
// with the updated post.
func (a *API) postAction(w http.ResponseWriter, r *http.Request, status int, fn func(id string) (feed.Post, error)) (feed.Post, bool) {
	p, err := fn(r.PathValue("postID"))
	switch {
	case errors.Is(err, feed.ErrPostNotFound):
		a.respondError(w, http.StatusNotFound, err, "Post not found")
		return feed.Post{}, false
	case errors.Is(err, feed.ErrEmptyComment):
		a.respondError(w, http.StatusBadRequest, err, "Comment text is required")
		return feed.Post{}, false
	case err != nil:
		a.respondError(w, http.StatusInternalServerError, err, "Could not update post")
		return feed.Post{}, false
	}
	a.respond(w, status, newPost(p))
	return p, true
}

func (a *API) toggleLike(w http.ResponseWriter, r *http.Request) {
	p, ok := a.postAction(w, r, http.StatusOK, func(id string) (feed.Post, error) {
		return a.Posts.ToggleLike(r.Context(), id)
	})
	if ok {
		a.broadcast(hub.EventLike, likeEvent{ID: p.ID, LikeCount: p.LikeCount, Liked: p.Liked})
	}
}

func (a *API) toggleComments(w http.ResponseWriter, r *http.Request) {
	a.postAction(w, r, http.StatusOK, func(id string) (feed.Post, error) {
		return a.Posts.ToggleComments(r.Context(), id)
	})
}

func (a *API) createComment(w http.ResponseWriter, r *http.Request) {
	var body commentText
	if !a.decode(w, r, &body) {
		return
	}
	p, ok := a.postAction(w, r, http.StatusCreated, func(id string) (feed.Post, error) {
		return a.Posts.SendComment(r.Context(), id, body.Text)
	})
	if ok {
		a.broadcast(hub.EventComment, newPost(p))
	}
}

func (a *API) sharePost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("postID")
	res, err := a.Posts.Share(r.Context(), id)
	if errors.Is(err, feed.ErrPostNotFound) {
		a.respondError(w, http.StatusNotFound, err, "Post not found")
		return
	}
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, err, "Could not share post")
		return
	}
	a.respond(w, http.StatusOK, res)
}
