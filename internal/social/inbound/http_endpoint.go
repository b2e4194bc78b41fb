package inbound

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
	"github.com/peyvandhq/peyvand/internal/pkg/router"
	"github.com/peyvandhq/peyvand/internal/social/usecase"
)

// postFormMaxMemory bounds how much of a multipart post upload is buffered in
// memory before spilling to disk.
const postFormMaxMemory = 10 << 20

// HTTPEndpoint exposes HTTP handlers for posts, comments, likes and follows.
type HTTPEndpoint struct {
	uc uc
}

// PostCreate publishes a post with text, an image or both.
// @Summary Create post
// @Description Accepts application/json with a content field, or multipart/form-data with content and an optional image file.
// @Tags Social, Posts
// @Security BearerAuth
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param request body PostCreateRequest false "Post payload"
// @Success 200 {object} router.successResponse{data=PostResponse} "Created post"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/posts [post]
func (h *HTTPEndpoint) PostCreate(r *router.Request) (any, error) {
	ctx := r.Context()
	in := usecase.PostCreateInput{}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(postFormMaxMemory); err != nil {
			return nil, goerror.NewInvalidFormat()
		}
		in.Content = r.FormValue("content")

		file, _, err := r.FormFile("image")
		switch {
		case errors.Is(err, http.ErrMissingFile):
			// text-only post
		case err != nil:
			return nil, goerror.NewInvalidFormat()
		default:
			defer func() {
				if err := file.Close(); err != nil {
					slog.ErrorContext(ctx, "failed to close file", "error", err)
				}
			}()

			head := make([]byte, 512)
			n, err := file.Read(head)
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, goerror.NewInvalidFormat()
			}

			in.Image = io.MultiReader(bytes.NewReader(head[:n]), file)
			in.ImageContentType = http.DetectContentType(head[:n])
		}
	} else {
		var req PostCreateRequest
		if err := r.DecodeBody(&req); err != nil {
			return nil, err
		}
		in.Content = req.Content
	}

	resp, err := h.uc.PostCreate(ctx, in)
	if err != nil {
		return nil, err
	}

	return newPostResponse(resp.Post), nil
}

// PostUpdate edits the text of the caller's own post.
// @Summary Update post
// @Tags Social, Posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Post id"
// @Param request body PostUpdateRequest true "Post payload"
// @Success 200 {object} router.successResponse{data=PostResponse} "Updated post"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 403 {object} router.errorResponse "Not the post owner"
// @Failure 404 {object} router.errorResponse "Post not found"
// @Router /api/v1/posts/{id} [put]
func (h *HTTPEndpoint) PostUpdate(r *router.Request) (any, error) {
	postID, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "id", "id must be a number")
	}

	var req PostUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.PostUpdate(r.Context(), usecase.PostUpdateInput{
		PostID:  postID,
		Content: req.Content,
	})
	if err != nil {
		return nil, err
	}

	return newPostResponse(resp.Post), nil
}

// PostDelete removes the caller's own post.
// @Summary Delete post
// @Tags Social, Posts
// @Security BearerAuth
// @Produce json
// @Param id path int true "Post id"
// @Success 200 {object} router.successResponse "Post deleted"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 403 {object} router.errorResponse "Not the post owner"
// @Failure 404 {object} router.errorResponse "Post not found"
// @Router /api/v1/posts/{id} [delete]
func (h *HTTPEndpoint) PostDelete(r *router.Request) (any, error) {
	postID, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "id", "id must be a number")
	}

	return nil, h.uc.PostDelete(r.Context(), usecase.PostDeleteInput{PostID: postID})
}

// UserPosts lists a user's posts, newest first.
// @Summary List user posts
// @Tags Social, Posts
// @Security BearerAuth
// @Produce json
// @Param id path int true "User id"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} router.successResponse{data=[]PostResponse} "Posts"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "User not found"
// @Router /api/v1/users/{id}/posts [get]
func (h *HTTPEndpoint) UserPosts(r *router.Request) (any, error) {
	userID, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "id", "id must be a number")
	}

	page, _ := r.GetQueryInt32("page")
	size, _ := r.GetQueryInt32("size")

	resp, err := h.uc.UserPosts(r.Context(), usecase.UserPostsInput{
		UserID: userID,
		Page:   page,
		Size:   size,
	})
	if err != nil {
		return nil, err
	}

	return newPostListResponse(resp), nil
}

// Feed returns the caller's home timeline.
// @Summary Get feed
// @Description Lists the caller's own posts plus posts from followed users, newest first.
// @Tags Social, Posts
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} router.successResponse{data=[]PostResponse} "Feed"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /api/v1/feed [get]
func (h *HTTPEndpoint) Feed(r *router.Request) (any, error) {
	page, _ := r.GetQueryInt32("page")
	size, _ := r.GetQueryInt32("size")

	resp, err := h.uc.Feed(r.Context(), usecase.FeedInput{Page: page, Size: size})
	if err != nil {
		return nil, err
	}

	return newPostListResponse(resp), nil
}

// CommentCreate adds a comment or a reply to a post.
// @Summary Create comment
// @Tags Social, Comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Post id"
// @Param request body CommentCreateRequest true "Comment payload"
// @Success 200 {object} router.successResponse{data=CommentResponse} "Created comment"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Post not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/posts/{id}/comments [post]
func (h *HTTPEndpoint) CommentCreate(r *router.Request) (any, error) {
	postID, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "id", "id must be a number")
	}

	var req CommentCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.CommentCreate(r.Context(), usecase.CommentCreateInput{
		PostID:   postID,
		ParentID: req.ParentID,
		Body:     req.Body,
	})
	if err != nil {
		return nil, err
	}

	return newCommentResponse(resp.Comment), nil
}

// CommentList lists a post's top-level comments, newest first.
// @Summary List comments
// @Tags Social, Comments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Post id"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} router.successResponse{data=[]CommentResponse} "Comments"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Post not found"
// @Router /api/v1/posts/{id}/comments [get]
func (h *HTTPEndpoint) CommentList(r *router.Request) (any, error) {
	postID, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "id", "id must be a number")
	}

	page, _ := r.GetQueryInt32("page")
	size, _ := r.GetQueryInt32("size")

	resp, err := h.uc.CommentList(r.Context(), usecase.CommentListInput{
		PostID: postID,
		Page:   page,
		Size:   size,
	})
	if err != nil {
		return nil, err
	}

	return newCommentListResponse(resp), nil
}

// CommentReplies lists a comment's replies, oldest first.
// @Summary List replies
// @Tags Social, Comments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Comment id"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} router.successResponse{data=[]CommentResponse} "Replies"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Comment not found"
// @Router /api/v1/comments/{id}/replies [get]
func (h *HTTPEndpoint) CommentReplies(r *router.Request) (any, error) {
	commentID, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "id", "id must be a number")
	}

	page, _ := r.GetQueryInt32("page")
	size, _ := r.GetQueryInt32("size")

	resp, err := h.uc.CommentReplies(r.Context(), usecase.CommentRepliesInput{
		CommentID: commentID,
		Page:      page,
		Size:      size,
	})
	if err != nil {
		return nil, err
	}

	return newCommentListResponse(resp), nil
}

// PostLike likes a post.
// @Summary Like post
// @Tags Social, Likes
// @Security BearerAuth
// @Produce json
// @Param id path int true "Post id"
// @Success 200 {object} router.successResponse{data=LikeResponse} "Like state"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Post not found"
// @Failure 409 {object} router.errorResponse "Already liked"
// @Router /api/v1/posts/{id}/like [post]
func (h *HTTPEndpoint) PostLike(r *router.Request) (any, error) {
	postID, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "id", "id must be a number")
	}

	resp, err := h.uc.PostLike(r.Context(), usecase.LikeInput{TargetID: postID})
	if err != nil {
		return nil, err
	}

	return LikeResponse{LikesCount: resp.LikesCount, Liked: resp.Liked}, nil
}

// PostUnlike removes the caller's like from a post.
// @Summary Unlike post
// @Tags Social, Likes
// @Security BearerAuth
// @Produce json
// @Param id path int true "Post id"
// @Success 200 {object} router.successResponse{data=LikeResponse} "Like state"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Post not found"
// @Failure 409 {object} router.errorResponse "Not liked"
// @Router /api/v1/posts/{id}/like [delete]
func (h *HTTPEndpoint) PostUnlike(r *router.Request) (any, error) {
	postID, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "id", "id must be a number")
	}

	resp, err := h.uc.PostUnlike(r.Context(), usecase.LikeInput{TargetID: postID})
	if err != nil {
		return nil, err
	}

	return LikeResponse{LikesCount: resp.LikesCount, Liked: resp.Liked}, nil
}

// CommentLike likes a comment.
// @Summary Like comment
// @Tags Social, Likes
// @Security BearerAuth
// @Produce json
// @Param id path int true "Comment id"
// @Success 200 {object} router.successResponse{data=LikeResponse} "Like state"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Comment not found"
// @Failure 409 {object} router.errorResponse "Already liked"
// @Router /api/v1/comments/{id}/like [post]
func (h *HTTPEndpoint) CommentLike(r *router.Request) (any, error) {
	commentID, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "id", "id must be a number")
	}

	resp, err := h.uc.CommentLike(r.Context(), usecase.LikeInput{TargetID: commentID})
	if err != nil {
		return nil, err
	}

	return LikeResponse{LikesCount: resp.LikesCount, Liked: resp.Liked}, nil
}

// CommentUnlike removes the caller's like from a comment.
// @Summary Unlike comment
// @Tags Social, Likes
// @Security BearerAuth
// @Produce json
// @Param id path int true "Comment id"
// @Success 200 {object} router.successResponse{data=LikeResponse} "Like state"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Comment not found"
// @Failure 409 {object} router.errorResponse "Not liked"
// @Router /api/v1/comments/{id}/like [delete]
func (h *HTTPEndpoint) CommentUnlike(r *router.Request) (any, error) {
	commentID, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "id", "id must be a number")
	}

	resp, err := h.uc.CommentUnlike(r.Context(), usecase.LikeInput{TargetID: commentID})
	if err != nil {
		return nil, err
	}

	return LikeResponse{LikesCount: resp.LikesCount, Liked: resp.Liked}, nil
}

// Follow follows another user.
// @Summary Follow user
// @Tags Social, Follows
// @Security BearerAuth
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} router.successResponse "Followed"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 409 {object} router.errorResponse "Already following"
// @Failure 422 {object} router.errorResponse "Cannot follow yourself"
// @Router /api/v1/users/{id}/follow [post]
func (h *HTTPEndpoint) Follow(r *router.Request) (any, error) {
	userID, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "id", "id must be a number")
	}

	return nil, h.uc.Follow(r.Context(), usecase.FollowInput{UserID: userID})
}

// Unfollow stops following another user.
// @Summary Unfollow user
// @Tags Social, Follows
// @Security BearerAuth
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} router.successResponse "Unfollowed"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Not following this user"
// @Router /api/v1/users/{id}/follow [delete]
func (h *HTTPEndpoint) Unfollow(r *router.Request) (any, error) {
	userID, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "id", "id must be a number")
	}

	return nil, h.uc.Unfollow(r.Context(), usecase.FollowInput{UserID: userID})
}

// Followers lists a user's followers.
// @Summary List followers
// @Tags Social, Follows
// @Security BearerAuth
// @Produce json
// @Param id path int true "User id"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} router.successResponse{data=[]FollowUserResponse} "Followers"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "User not found"
// @Router /api/v1/users/{id}/followers [get]
func (h *HTTPEndpoint) Followers(r *router.Request) (any, error) {
	userID, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "id", "id must be a number")
	}

	page, _ := r.GetQueryInt32("page")
	size, _ := r.GetQueryInt32("size")

	resp, err := h.uc.Followers(r.Context(), usecase.FollowListInput{
		UserID: userID,
		Page:   page,
		Size:   size,
	})
	if err != nil {
		return nil, err
	}

	return newFollowListResponse(resp), nil
}

// Following lists the users someone follows.
// @Summary List following
// @Tags Social, Follows
// @Security BearerAuth
// @Produce json
// @Param id path int true "User id"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} router.successResponse{data=[]FollowUserResponse} "Following"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "User not found"
// @Router /api/v1/users/{id}/following [get]
func (h *HTTPEndpoint) Following(r *router.Request) (any, error) {
	userID, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "id", "id must be a number")
	}

	page, _ := r.GetQueryInt32("page")
	size, _ := r.GetQueryInt32("size")

	resp, err := h.uc.Following(r.Context(), usecase.FollowListInput{
		UserID: userID,
		Page:   page,
		Size:   size,
	})
	if err != nil {
		return nil, err
	}

	return newFollowListResponse(resp), nil
}

// FollowingIDs returns the ids of every user the caller follows.
// @Summary List following ids
// @Tags Social, Follows
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=FollowingIDsResponse} "Following ids"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /api/v1/profile/following-ids [get]
func (h *HTTPEndpoint) FollowingIDs(r *router.Request) (any, error) {
	resp, err := h.uc.FollowingIDs(r.Context())
	if err != nil {
		return nil, err
	}

	return FollowingIDsResponse{IDs: resp.IDs}, nil
}

func newPostListResponse(out *usecase.PostListOutput) PostListResponse {
	posts := make([]PostResponse, 0, len(out.Posts))
	for _, view := range out.Posts {
		posts = append(posts, newPostResponse(view))
	}

	return PostListResponse{Posts: posts, Total: out.Total, Page: out.Page, Size: out.Size}
}

func newCommentListResponse(out *usecase.CommentListOutput) CommentListResponse {
	comments := make([]CommentResponse, 0, len(out.Comments))
	for _, view := range out.Comments {
		comments = append(comments, newCommentResponse(view))
	}

	return CommentListResponse{Comments: comments, Total: out.Total, Page: out.Page, Size: out.Size}
}

func newFollowListResponse(out *usecase.FollowListOutput) FollowListResponse {
	users := make([]FollowUserResponse, 0, len(out.Users))
	for _, user := range out.Users {
		users = append(users, FollowUserResponse{
			ID:                      user.ID,
			Name:                    user.Name,
			AvatarURL:               user.AvatarURL,
			IsFollowedByCurrentUser: user.FollowedByViewer,
		})
	}

	return FollowListResponse{Users: users, Total: out.Total, Page: out.Page, Size: out.Size}
}
