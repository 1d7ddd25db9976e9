package api

import (
	"net/http" // HTTP status codes

	"mileage_mall/internal/domain"  // Domain models
	"mileage_mall/internal/service" // Account facade

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request bodies

// CartRequest adds a product option to the cart
type CartRequest struct {
	ProductID uint `json:"product_id" binding:"required"` // Product
	OptionID  uint `json:"option_id"`                     // Option, 0 for none
	Quantity  int  `json:"quantity"`                      // Must be positive
}

// WishRequest adds a product to the wishlist
type WishRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// ChargeRequest tops up mileage
type ChargeRequest struct {
	Amount int64 `json:"amount"` // Validated by the ledger
}

// PasswordRequest changes the password
type PasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// CancelRequest cancels one order line
type CancelRequest struct {
	OrderID       uint `json:"order_id" binding:"required"`
	OrderDetailID uint `json:"order_detail_id" binding:"required"`
}

// ReturnRequest asks to return one order line
type ReturnRequest struct {
	OrderDetailID  uint   `json:"order_detail_id" binding:"required"`
	ReturnContents string `json:"return_contents"` // Blank is rejected by the facade
}

// ReviewRequest marks an order line as reviewed
type ReviewRequest struct {
	OrderDetailID uint `json:"order_detail_id" binding:"required"`
}

// InquiryRequest files a customer inquiry
type InquiryRequest struct {
	Type     string `json:"type" binding:"required"`
	Title    string `json:"title" binding:"required,max=100"`
	Contents string `json:"contents" binding:"required"`
	Image    string `json:"image" binding:"max=255"`
}

// AccountHandler serves every /users/:userId route
type AccountHandler struct {
	account *service.Account
}

// NewAccountHandler wraps the facade for gin
func NewAccountHandler(account *service.Account) *AccountHandler {
	return &AccountHandler{account: account}
}

// Register mounts the per-user routes on g; g must already run the JWT and ownership middleware
func (h *AccountHandler) Register(g *gin.RouterGroup) {
	g.GET("/cart", h.Cart)
	g.POST("/cart", h.AddCart)
	g.DELETE("/cart/:cartIds", h.RemoveCart)
	g.GET("/cart-count", h.CartCount)

	g.GET("/wish", h.Wishlist)
	g.POST("/wish", h.AddWish)
	g.GET("/wish/:productId", h.IsWished)
	g.DELETE("/wish/:wishlistIds", h.RemoveWishes)

	g.GET("/mypage/mileage", h.SubHeader)
	g.GET("/mypage/myinfo", h.UserInfo)
	g.PUT("/mypage/myinfo", h.UpdateAddress)
	g.PUT("/mypage/change-pwd", h.ChangePassword)
	g.GET("/mypage/mileage-usage", h.MileageUsage)
	g.POST("/mypage/mileage-charge", h.ChargeMileage)

	g.GET("/mypage/orders", h.Orders)
	g.GET("/mypage/orders/:orderId", h.OrderDetails)
	g.POST("/mypage/order/cancel", h.CancelOrderDetail)
	g.POST("/mypage/order/return", h.ReturnOrderDetail)
	g.GET("/mypage/available-reviews", h.AvailableReviews)
	g.GET("/mypage/written-reviews", h.WrittenReviews)
	g.POST("/mypage/reviews", h.SubmitReview)

	g.POST("/board/inquiry", h.CreateInquiry)
	g.GET("/mypage/inquiry", h.Inquiries)
}

func (h *AccountHandler) Cart(c *gin.Context) {
	items, err := h.account.Cart(c.Request.Context(), pathID(c, "userId"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (h *AccountHandler) AddCart(c *gin.Context) {
	var req CartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	err := h.account.AddCart(c.Request.Context(), pathID(c, "userId"), req.ProductID, req.OptionID, req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, nil)
}

func (h *AccountHandler) RemoveCart(c *gin.Context) {
	results, err := h.account.RemoveCart(c.Request.Context(), pathID(c, "userId"), idList(c.Param("cartIds")))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, results)
}

func (h *AccountHandler) CartCount(c *gin.Context) {
	n, err := h.account.CartCount(c.Request.Context(), pathID(c, "userId"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"count": n})
}

func (h *AccountHandler) Wishlist(c *gin.Context) {
	page, err := h.account.Wishlist(c.Request.Context(), pathID(c, "userId"), pageParam(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, page)
}

func (h *AccountHandler) AddWish(c *gin.Context) {
	var req WishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.account.AddWish(c.Request.Context(), pathID(c, "userId"), req.ProductID); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, nil)
}

func (h *AccountHandler) IsWished(c *gin.Context) {
	wished, err := h.account.IsWished(c.Request.Context(), pathID(c, "userId"), pathID(c, "productId"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"wished": wished})
}

func (h *AccountHandler) RemoveWishes(c *gin.Context) {
	results, err := h.account.RemoveWishes(c.Request.Context(), pathID(c, "userId"), idList(c.Param("wishlistIds")))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, results)
}

func (h *AccountHandler) SubHeader(c *gin.Context) {
	header, err := h.account.SubHeader(c.Request.Context(), pathID(c, "userId"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, header)
}

func (h *AccountHandler) UserInfo(c *gin.Context) {
	user, err := h.account.UserInfo(c.Request.Context(), pathID(c, "userId"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, user)
}

func (h *AccountHandler) UpdateAddress(c *gin.Context) {
	var req domain.Address
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.account.UpdateAddress(c.Request.Context(), pathID(c, "userId"), req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, user)
}

func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	err := h.account.ChangePassword(c.Request.Context(), pathID(c, "userId"), req.CurrentPassword, req.NewPassword)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, nil)
}

func (h *AccountHandler) MileageUsage(c *gin.Context) {
	page, err := h.account.MileageUsage(c.Request.Context(), pathID(c, "userId"), pageParam(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, page)
}

func (h *AccountHandler) ChargeMileage(c *gin.Context) {
	var req ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	header, err := h.account.ChargeMileage(c.Request.Context(), pathID(c, "userId"), req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, header)
}

func (h *AccountHandler) Orders(c *gin.Context) {
	page, err := h.account.Orders(c.Request.Context(), pathID(c, "userId"), pageParam(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, page)
}

func (h *AccountHandler) OrderDetails(c *gin.Context) {
	listing, err := h.account.OrderDetails(c.Request.Context(), pathID(c, "userId"), pathID(c, "orderId"), pageParam(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, listing)
}

func (h *AccountHandler) CancelOrderDetail(c *gin.Context) {
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	listing, err := h.account.CancelOrderDetail(c.Request.Context(), pathID(c, "userId"), req.OrderID, req.OrderDetailID, pageParam(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, listing)
}

func (h *AccountHandler) ReturnOrderDetail(c *gin.Context) {
	var req ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	listing, err := h.account.ReturnOrderDetail(c.Request.Context(), pathID(c, "userId"), req.OrderDetailID, req.ReturnContents, pageParam(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, listing)
}

func (h *AccountHandler) AvailableReviews(c *gin.Context) {
	page, err := h.account.AvailableReviews(c.Request.Context(), pathID(c, "userId"), pageParam(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, page)
}

func (h *AccountHandler) WrittenReviews(c *gin.Context) {
	page, err := h.account.WrittenReviews(c.Request.Context(), pathID(c, "userId"), pageParam(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, page)
}

func (h *AccountHandler) SubmitReview(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	detail, err := h.account.SubmitReview(c.Request.Context(), pathID(c, "userId"), req.OrderDetailID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, detail)
}

func (h *AccountHandler) CreateInquiry(c *gin.Context) {
	var req InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	inquiry, err := h.account.CreateInquiry(c.Request.Context(), pathID(c, "userId"), req.Type, req.Title, req.Contents, req.Image)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, inquiry)
}

func (h *AccountHandler) Inquiries(c *gin.Context) {
	page, err := h.account.Inquiries(c.Request.Context(), pathID(c, "userId"), pageParam(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, page)
}
