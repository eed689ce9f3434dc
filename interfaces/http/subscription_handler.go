package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"vidsocial/domain/dto"
	"vidsocial/usecase"
)

type ISubscriptionHandler interface {
	Toggle(c *gin.Context)
	Subscribers(c *gin.Context)
	SubscribedChannels(c *gin.Context)
}

type SubscriptionHandler struct {
	subscriptionUsecase usecase.ISubscriptionUsecase
}

func NewSubscriptionHandler(subscriptionUsecase usecase.ISubscriptionUsecase) ISubscriptionHandler {
	return &SubscriptionHandler{subscriptionUsecase: subscriptionUsecase}
}

func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	subscribed, err := h.subscriptionUsecase.Toggle(c.Request.Context(), actor, c.Param("channelId"))
	if err != nil {
		respondError(c, err)
		return
	}
	message := "Unsubscribed successfully"
	if subscribed {
		message = "Subscribed successfully"
	}
	respond(c, http.StatusOK, dto.ResSubscriptionToggle{IsSubscribed: subscribed}, message)
}

func (h *SubscriptionHandler) Subscribers(c *gin.Context) {
	subscribers, err := h.subscriptionUsecase.Subscribers(c.Request.Context(), c.Param("channelId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, subscribers, "Subscribers fetched successfully")
}

// SubscribedChannels serves /subscriptions for the actor and
// /subscriptions/u/:subscriberId for any user.
func (h *SubscriptionHandler) SubscribedChannels(c *gin.Context) {
	subscriberID := c.Param("subscriberId")
	if subscriberID == "" {
		actor, ok := actorOf(c)
		if !ok {
			return
		}
		subscriberID = actor.Hex()
	}
	channels, err := h.subscriptionUsecase.SubscribedChannels(c.Request.Context(), subscriberID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, channels, "Subscribed channels fetched successfully")
}
