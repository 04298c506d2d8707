package routes

import (
	"net/http"

	"vendora/auth"
	"vendora/cart"
	"vendora/checkout"
	"vendora/middleware"
	"vendora/orders"
	"vendora/products"
	"vendora/ratelim"
	"vendora/shops"

	"github.com/julienschmidt/httprouter"
)

func RoutesWrapper(router *httprouter.Router, rl *ratelim.RateLimiter) {
	AddAuthRoutes(router, rl)
	AddShopRoutes(router, rl)
	AddProductRoutes(router, rl)
	AddCartRoutes(router, rl)
	AddCheckoutRoutes(router, rl)
	AddOrderRoutes(router, rl)
	AddStaticRoutes(router)
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
}

func AddShopRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/shops", rl.Limit(middleware.Authenticate(shops.CreateShop)))
	router.GET("/api/shop", middleware.Authenticate(shops.GetMyShop))
	router.GET("/api/shops/:shopid", shops.GetShop)
	router.GET("/api/shops/:shopid/orders", middleware.Authenticate(orders.GetShopOrders))
}

func AddProductRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/products", rl.Limit(middleware.Authenticate(products.CreateProduct)))
	router.GET("/api/products", products.GetProducts)
	router.GET("/api/products/:productid", products.GetProduct)
	router.PATCH("/api/products/:productid/stock", middleware.Authenticate(products.UpdateStock))
	router.POST("/api/products/:productid/images", rl.Limit(middleware.Authenticate(products.UploadProductImage)))
}

func AddCartRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/cart", rl.Limit(middleware.Authenticate(cart.AddToCart)))
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.PUT("/api/cart/:lineid", middleware.Authenticate(cart.UpdateLine))
	router.DELETE("/api/cart/:lineid", middleware.Authenticate(cart.RemoveLine))
	router.DELETE("/api/cart", middleware.Authenticate(cart.ClearCart))
}

func AddCheckoutRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	h := checkout.NewHandler()
	router.POST("/api/checkout", rl.Limit(middleware.Authenticate(h.InitiateCheckout)))
	router.POST("/api/checkout/shipping-options", middleware.Authenticate(h.GetShippingOptions))
}

func AddOrderRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/orders", middleware.Authenticate(orders.GetMyOrders))
	router.GET("/api/orders/:orderid", middleware.Authenticate(orders.GetOrder))
	router.GET("/api/orders/:orderid/invoice", middleware.Authenticate(orders.PrintInvoice))
	router.PATCH("/api/orders/:orderid/status", rl.Limit(middleware.Authenticate(orders.UpdateOrderStatus)))
	router.GET("/ws/shops/:shopid/orders", orders.OrderFeed)
}
