package http

import (
	"github.com/go-openapi/runtime/middleware"
	gohandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	websocketTransport "github.com/kahvecikaan/luxegear/internal/transport/websocket"
	"net/http"
	"path/filepath"
	"runtime"
)

// Handlers groups the endpoint handlers mounted by NewRouter
type Handlers struct {
	Products  *ProductHandler
	Cart      *CartHandler
	Wishlist  *WishlistHandler
	Auth      *AuthHandler
	Checkout  *CheckoutHandler
	Admin     *AdminHandler
	WebSocket *websocketTransport.Handler
}

func NewRouter(h Handlers, mw *Middleware) http.Handler {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(mw.LoggingMiddleware)

	// Catalog routes need no session
	catalogRouter := router.PathPrefix("/").Subrouter()
	catalogRouter.Use(mw.ContentTypeMiddleware)
	catalogRouter.Use(gohandlers.CompressHandler)
	catalogRouter.HandleFunc("/products", h.Products.GetProducts).Methods("GET")
	catalogRouter.HandleFunc("/products/featured", h.Products.GetFeatured).Methods("GET")
	catalogRouter.HandleFunc("/products/{id:[0-9]+}", h.Products.GetProductByID).Methods("GET")
	catalogRouter.HandleFunc("/categories", h.Products.ListCategories).Methods("GET")

	// Shopper routes
	shop := router.PathPrefix("/").Subrouter()
	shop.Use(mw.ContentTypeMiddleware)
	shop.Use(mw.SessionMiddleware)
	shop.Use(gohandlers.CompressHandler)

	shop.HandleFunc("/cart", h.Cart.GetCart).Methods("GET")
	shop.HandleFunc("/cart", h.Cart.ClearCart).Methods("DELETE")
	shop.HandleFunc("/cart/items", h.Cart.AddItem).Methods("POST")
	shop.HandleFunc("/cart/items/{id:[0-9]+}", h.Cart.UpdateItem).Methods("PUT")
	shop.HandleFunc("/cart/items/{id:[0-9]+}", h.Cart.RemoveItem).Methods("DELETE")
	shop.HandleFunc("/cart/coupon", h.Cart.ApplyCoupon).Methods("POST")
	shop.HandleFunc("/cart/coupon", h.Cart.RemoveCoupon).Methods("DELETE")

	shop.HandleFunc("/wishlist", h.Wishlist.GetWishlist).Methods("GET")
	shop.HandleFunc("/wishlist/cart", h.Wishlist.MoveToCart).Methods("POST")
	shop.HandleFunc("/wishlist/{id:[0-9]+}", h.Wishlist.Toggle).Methods("POST")
	shop.HandleFunc("/wishlist/{id:[0-9]+}", h.Wishlist.Remove).Methods("DELETE")

	shop.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")
	shop.HandleFunc("/auth/register", h.Auth.Register).Methods("POST")
	shop.HandleFunc("/auth/logout", h.Auth.Logout).Methods("POST")
	shop.HandleFunc("/auth/me", h.Auth.Me).Methods("GET")
	shop.HandleFunc("/orders", h.Auth.MyOrders).Methods("GET")

	shop.HandleFunc("/checkout", h.Checkout.GetCheckout).Methods("GET")
	shop.HandleFunc("/checkout", h.Checkout.Begin).Methods("POST")
	shop.HandleFunc("/checkout/shipping", h.Checkout.SubmitShipping).Methods("POST")
	shop.HandleFunc("/checkout/back", h.Checkout.Back).Methods("POST")
	shop.HandleFunc("/checkout/payment", h.Checkout.SubmitPayment).Methods("POST")

	// Admin routes, the session must be signed in as an admin
	admin := shop.PathPrefix("/admin").Subrouter()
	admin.Use(mw.AdminMiddleware)

	postRouter := admin.Methods("POST").Subrouter()
	postRouter.HandleFunc("/products", h.Products.AddProduct)
	postRouter.Use(mw.ValidationMiddleware)

	putRouter := admin.Methods("PUT").Subrouter()
	putRouter.HandleFunc("/products/{id:[0-9]+}", h.Products.UpdateProduct)
	putRouter.Use(mw.ValidationMiddleware)

	admin.HandleFunc("/products/{id:[0-9]+}", h.Products.DeleteProduct).Methods("DELETE")

	admin.HandleFunc("/dashboard", h.Admin.Dashboard).Methods("GET")
	admin.HandleFunc("/orders", h.Admin.Orders).Methods("GET")
	admin.HandleFunc("/orders/{id}/status", h.Admin.UpdateOrderStatus).Methods("PUT")
	admin.HandleFunc("/users", h.Admin.Users).Methods("GET")
	admin.HandleFunc("/users/{id}/role", h.Admin.UpdateUserRole).Methods("PUT")
	admin.HandleFunc("/users/{id}", h.Admin.DeleteUser).Methods("DELETE")

	router.HandleFunc("/ws", h.WebSocket.HandleWebSocket).Methods("GET")

	// Swagger UI and specification routes
	_, filename, _, _ := runtime.Caller(0)
	basePath := filepath.Dir(filename)                        // .../internal/transport/http
	rootDir := filepath.Join(basePath, "..", "..", "..")      // Navigate up to the root
	swaggerFilePath := filepath.Join(rootDir, "swagger.yaml") // .../swagger.yaml

	router.HandleFunc("/swagger.yaml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, swaggerFilePath)
	}).Methods("GET")

	swaggerOpts := middleware.RedocOpts{SpecURL: "/swagger.yaml"}
	router.Handle("/docs", middleware.Redoc(swaggerOpts, nil)).Methods("GET")

	// CORS wraps the router so preflight requests are answered for every route
	return gohandlers.RecoveryHandler(gohandlers.PrintRecoveryStack(true))(
		mw.CORSMiddleware(router),
	)
}
