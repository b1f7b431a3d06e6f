package routes

import (
	"maison/auth"
	"maison/cart"
	"maison/catalog"
	"maison/categories"
	"maison/middleware"
	"maison/orders"
	"maison/payments"
	"maison/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.RefreshToken))
}

func AddProductRoutes(router *httprouter.Router) {
	router.GET("/api/products", middleware.OptionalAuth(catalog.GetProducts))
	router.GET("/api/products/:id", middleware.OptionalAuth(catalog.GetProduct))
	router.GET("/api/product/slug/:slug", middleware.OptionalAuth(catalog.GetProductBySlug))
	router.POST("/api/products", middleware.RequireRole("admin", catalog.CreateProduct))
	router.DELETE("/api/products/:id", middleware.RequireRole("admin", catalog.DeleteProduct))
}

func AddCategoryRoutes(router *httprouter.Router) {
	router.GET("/api/categories", categories.GetCategories)
	router.GET("/api/categories/tree", categories.GetCategoryTree)
	router.GET("/api/category/:parentId/sub", categories.GetSubCategories)
	router.POST("/api/categories", middleware.RequireRole("admin", categories.CreateCategory))
}

func AddOrderRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/orders", rl.Limit(middleware.Authenticate(orders.CreateOrder)))
	router.GET("/api/orders", middleware.RequireRole("admin", orders.GetAllOrders))
	router.GET("/api/orders/user/:userId", middleware.Authenticate(orders.GetUserOrders))
	router.GET("/api/order/:orderId", middleware.Authenticate(orders.GetOrder))
	router.GET("/api/order/:orderId/invoice", middleware.Authenticate(orders.PrintInvoice))
	router.PATCH("/api/order/:orderId/status", middleware.RequireRole("admin", orders.UpdateOrderStatus))
	router.PATCH("/api/order/:orderId/cancel", middleware.Authenticate(orders.CancelOrder))
	router.POST("/api/order/:orderId/return", middleware.Authenticate(orders.InitiateReturn))
	router.PATCH("/api/order/:orderId/return", middleware.RequireRole("admin", orders.ResolveReturn))
}

func AddCartRoutes(router *httprouter.Router) {
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.POST("/api/cart", middleware.Authenticate(cart.AddToCart))
	router.PUT("/api/cart", middleware.Authenticate(cart.UpdateCart))
	router.DELETE("/api/cart", middleware.Authenticate(cart.ClearCart))
}

func AddPaymentRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/payments/verify", rl.Limit(payments.VerifyPayment))
	router.GET("/api/payment/:transactionId", middleware.Authenticate(payments.GetPayment))
}

func AddWishlistRoutes(router *httprouter.Router) {
	router.GET("/api/wishlist", middleware.Authenticate(auth.GetWishlist))
	router.POST("/api/wishlist/:productId", middleware.Authenticate(auth.AddToWishlist))
	router.DELETE("/api/wishlist/:productId", middleware.Authenticate(auth.RemoveFromWishlist))
}
