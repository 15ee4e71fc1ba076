package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"safety_reports/internal/services"
)

// CommentController serves the author-only comment endpoints. Someone
// else's comment answers 404, same as a missing one.
type CommentController struct {
	actorLoader
	comments *services.CommentService
}

func NewCommentController(users *services.UserService, comments *services.CommentService) *CommentController {
	return &CommentController{actorLoader: actorLoader{users: users}, comments: comments}
}

func (cc *CommentController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actor, err := cc.currentActor(c)
	if err != nil {
		respondError(c, "GetComment", err)
		return
	}

	comment, err := cc.comments.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, "GetComment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": toCommentResponse(actor, comment)})
}

func (cc *CommentController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actor, err := cc.currentActor(c)
	if err != nil {
		respondError(c, "EditComment", err)
		return
	}

	var body struct {
		Content string `json:"content" form:"content"`
	}
	if err := c.ShouldBind(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := cc.comments.Edit(c.Request.Context(), actor, id, body.Content)
	if err != nil {
		respondError(c, "EditComment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Comment updated successfully!",
		"comment": toCommentResponse(actor, comment),
	})
}

func (cc *CommentController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actor, err := cc.currentActor(c)
	if err != nil {
		respondError(c, "DeleteComment", err)
		return
	}

	if err := cc.comments.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, "DeleteComment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully!"})
}
