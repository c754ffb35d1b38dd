package handler

import (
	"github.com/gin-gonic/gin"

	reviewapp "github.com/morabaat/backend/internal/application/review"
	"github.com/morabaat/backend/internal/interfaces/http/middleware"
)

// ReviewHandler serves review submission, browsing, voting, reporting,
// owner replies and the moderation back office.
type ReviewHandler struct {
	BaseHandler
	reviews *reviewapp.Service
}

// NewReviewHandler creates a ReviewHandler
func NewReviewHandler(reviews *reviewapp.Service) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// RegisterRoutes mounts the public browsing endpoint (OptionalAuth lets
// members and admins see pending reviews).
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/companies/:slug/reviews", h.ListForCompany)
}

// RegisterProtectedRoutes mounts the authenticated review endpoints
func (h *ReviewHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/companies/:slug/reviews", h.Submit)
	g := rg.Group("/reviews")
	g.GET("/mine", h.ListMine)
	g.POST("/:id/vote", h.Vote)
	g.POST("/:id/report", h.Report)
	g.POST("/:id/reply", h.Reply)
}

// RegisterDashboardRoutes mounts the owner's review view; members see
// pending reviews for their own company.
func (h *ReviewHandler) RegisterDashboardRoutes(rg *gin.RouterGroup) {
	rg.GET("/companies/:id/reviews", h.ListForCompanyID)
}

// RegisterAdminRoutes mounts the moderation endpoints
func (h *ReviewHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/reviews")
	g.GET("/pending", h.ListPending)
	g.PATCH("/:id", h.Moderate)
	r := rg.Group("/review-reports")
	r.GET("", h.ListReports)
	r.POST("/:id/decide", h.DecideReport)
}

// Submit files a review against a company; it stays hidden until approved
func (h *ReviewHandler) Submit(c *gin.Context) {
	var input reviewapp.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	view, err := h.reviews.SubmitForSlug(c.Request.Context(), reviewActor(c), c.Param("slug"), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// ListForCompany pages a company's reviews. Anonymous callers see only
// approved ones.
func (h *ReviewHandler) ListForCompany(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	var actor *reviewapp.Actor
	if middleware.IsAuthenticated(c) {
		a := reviewActor(c)
		actor = &a
	}
	page, err := h.reviews.ListForCompanySlug(c.Request.Context(), actor, c.Param("slug"), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

// ListForCompanyID pages reviews for a dashboard-managed company
func (h *ReviewHandler) ListForCompanyID(c *gin.Context) {
	companyID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	a := reviewActor(c)
	page, err := h.reviews.ListForCompany(c.Request.Context(), &a, companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

// ListMine pages the caller's own reviews
func (h *ReviewHandler) ListMine(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	page, err := h.reviews.ListMine(c.Request.Context(), reviewActor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

// Vote casts, switches or retracts a helpfulness vote
func (h *ReviewHandler) Vote(c *gin.Context) {
	reviewID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var input reviewapp.VoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	result, err := h.reviews.Vote(c.Request.Context(), reviewActor(c), reviewID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Report flags a review for moderation
func (h *ReviewHandler) Report(c *gin.Context) {
	reviewID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var input reviewapp.ReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	view, err := h.reviews.Report(c.Request.Context(), reviewActor(c), reviewID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// Reply posts the company's answer under an approved review
func (h *ReviewHandler) Reply(c *gin.Context) {
	reviewID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var input reviewapp.ReplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	view, err := h.reviews.Reply(c.Request.Context(), reviewActor(c), reviewID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// ListPending pages the moderation queue
func (h *ReviewHandler) ListPending(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	page, err := h.reviews.ListPending(c.Request.Context(), reviewActor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

type moderateReviewRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
}

// Moderate applies an approve or reject decision. Approve publishes the
// review and refreshes the company aggregate; reject deletes it outright.
func (h *ReviewHandler) Moderate(c *gin.Context) {
	reviewID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req moderateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if req.Action == "approve" {
		view, err := h.reviews.Approve(c.Request.Context(), reviewActor(c), reviewID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, view)
		return
	}
	if err := h.reviews.Reject(c.Request.Context(), reviewActor(c), reviewID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListReports pages pending abuse reports
func (h *ReviewHandler) ListReports(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	page, err := h.reviews.ListReports(c.Request.Context(), reviewActor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, page)
}

type decideReportRequest struct {
	Uphold bool `json:"uphold"`
}

// DecideReport resolves an abuse report; upholding it deletes the review
func (h *ReviewHandler) DecideReport(c *gin.Context) {
	reportID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req decideReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	view, err := h.reviews.DecideReport(c.Request.Context(), reviewActor(c), reportID, req.Uphold)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}
