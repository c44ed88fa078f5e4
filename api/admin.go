package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/moderation"
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/notify"
)

// pageQuery reads the search term and page number of a listing request.
// A missing page means the first one.
func (a *API) pageQuery(w http.ResponseWriter, r *http.Request) (string, int, bool) {
	q := r.URL.Query()
	page := 1
	if s := q.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			a.respondError(w, http.StatusBadRequest, err, "Invalid page")
			return "", 0, false
		}
		page = n
	}
	search := q.Get("q")
	if errs := a.Val.Validate(search, "max=100"); len(errs) > 0 {
		a.respond(w, http.StatusBadRequest, validationResponse{Errors: errs})
		return "", 0, false
	}
	return search, page, true
}

func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
	search, page, ok := a.pageQuery(w, r)
	if !ok {
		return
	}
	p, err := a.Moderation.Users(r.Context(), search, page)
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, err, "Could not list users")
		return
	}
	a.respond(w, http.StatusOK, p)
}

func (a *API) listReportedPosts(w http.ResponseWriter, r *http.Request) {
	search, page, ok := a.pageQuery(w, r)
	if !ok {
		return
	}
	p, err := a.Moderation.Posts(r.Context(), search, page)
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, err, "Could not list posts")
		return
	}
	a.respond(w, http.StatusOK, p)
}

func (a *API) getReportedPost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("postID"), 10, 64)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, err, "Invalid id")
		return
	}
	p, err := a.Moderation.Post(r.Context(), id)
	if errors.Is(err, moderation.ErrNotFound) {
		a.respondError(w, http.StatusNotFound, err, "Not found")
		return
	}
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, err, "Could not get post")
		return
	}
	a.respond(w, http.StatusOK, p)
}

type moderationAction func(ctx context.Context, id int64, c notify.Confirmer) (bool, error)

// moderate runs act on the id in the named path parameter, with the request
// deciding the confirmation prompt.
func (a *API) moderate(w http.ResponseWriter, r *http.Request, param string, act moderationAction) {
	id, err := strconv.ParseInt(r.PathValue(param), 10, 64)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, err, "Invalid id")
		return
	}
	ok, err := act(r.Context(), id, confirmation(r))
	if errors.Is(err, moderation.ErrNotFound) {
		a.respondError(w, http.StatusNotFound, err, "Not found")
		return
	}
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, err, "Could not complete action")
		return
	}
	a.respond(w, http.StatusOK, confirmResponse{Confirmed: ok})
}

func (a *API) banUser(w http.ResponseWriter, r *http.Request) {
	a.moderate(w, r, "userID", a.Moderation.Ban)
}

func (a *API) unbanUser(w http.ResponseWriter, r *http.Request) {
	a.moderate(w, r, "userID", a.Moderation.Unban)
}

func (a *API) deleteUser(w http.ResponseWriter, r *http.Request) {
	a.moderate(w, r, "userID", a.Moderation.DeleteUser)
}

func (a *API) deleteReportedPost(w http.ResponseWriter, r *http.Request) {
	a.moderate(w, r, "postID", a.Moderation.DeletePost)
}

func (a *API) dismissReports(w http.ResponseWriter, r *http.Request) {
	a.moderate(w, r, "postID", a.Moderation.DismissReports)
}
