package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/chat"
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/friends"
)

func (a *API) friendState() Friends {
	return Friends{Requests: a.Friends.Requests(), Friends: a.Friends.Friends()}
}

func (a *API) listFriendRequests(w http.ResponseWriter, r *http.Request) {
	a.respond(w, http.StatusOK, a.friendState())
}

func (a *API) confirmFriendRequest(w http.ResponseWriter, r *http.Request) {
	a.answerFriendRequest(w, r, a.Friends.Confirm)
}

func (a *API) deleteFriendRequest(w http.ResponseWriter, r *http.Request) {
	a.answerFriendRequest(w, r, a.Friends.Delete)
}

func (a *API) answerFriendRequest(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, name string) error) {
	err := fn(r.Context(), r.PathValue("name"))
	if errors.Is(err, friends.ErrNoRequest) {
		a.respondError(w, http.StatusNotFound, err, "Friend request not found")
		return
	}
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, err, "Could not answer friend request")
		return
	}
	a.respond(w, http.StatusOK, a.friendState())
}

func (a *API) sendFriendRequest(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	err := a.Friends.Send(r.Context(), name)
	if errors.Is(err, friends.ErrRequestPending) {
		a.respondError(w, http.StatusConflict, err, "Friend request already sent")
		return
	}
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, err, "Could not send friend request")
		return
	}
	a.respond(w, http.StatusOK, Suggestion{Name: name, Label: a.Friends.Label(name)})
}

func (a *API) listConversations(w http.ResponseWriter, r *http.Request) {
	a.respond(w, http.StatusOK, Conversations{Conversations: a.Chat.Conversations()})
}

func (a *API) openConversation(w http.ResponseWriter, r *http.Request) {
	c, err := a.Chat.Open(r.PathValue("conversationID"))
	if errors.Is(err, chat.ErrNoConversation) {
		a.respondError(w, http.StatusNotFound, err, "Conversation not found")
		return
	}
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, err, "Could not open conversation")
		return
	}
	a.respond(w, http.StatusOK, c)
}

func (a *API) sendMessage(w http.ResponseWriter, r *http.Request) {
	var body messageText
	if !a.decode(w, r, &body) {
		return
	}
	c, err := a.Chat.Send(r.Context(), r.PathValue("conversationID"), body.Text)
	switch {
	case errors.Is(err, chat.ErrNoConversation):
		a.respondError(w, http.StatusNotFound, err, "Conversation not found")
		return
	case errors.Is(err, chat.ErrEmptyMessage):
		a.respondError(w, http.StatusBadRequest, err, "Message text is required")
		return
	case err != nil:
		a.respondError(w, http.StatusInternalServerError, err, "Could not send message")
		return
	}
	a.respond(w, http.StatusCreated, c)
}
