package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"storefront/pkg/domain/model"
	"storefront/pkg/domain/service"
)

// SchemaProvider returns a human-readable description of the persistence
// schema for the introspection endpoint.
type SchemaProvider func() (string, error)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker func() error

type Handler struct {
	checkout service.CheckoutService
	download service.DownloadService
	catalog  service.CatalogService
	schema   SchemaProvider
	health   HealthChecker

	adminEmail    string
	adminPassword string
}

func NewHandler(
	checkout service.CheckoutService,
	download service.DownloadService,
	catalog service.CatalogService,
	schema SchemaProvider,
	health HealthChecker,
	adminEmail, adminPassword string,
) *Handler {
	return &Handler{
		checkout:      checkout,
		download:      download,
		catalog:       catalog,
		schema:        schema,
		health:        health,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
	}
}

func Router(h *Handler, throttle *Throttle) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", h.rootHandler).Methods(http.MethodGet)
	r.HandleFunc("/schema", h.schemaHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", h.healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/products", h.listProductsHandler).Methods(http.MethodGet)
	r.HandleFunc("/checkout", h.checkoutHandler).Methods(http.MethodPost)
	r.HandleFunc("/download/{token}", h.downloadHandler).Methods(http.MethodGet)

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(h.requireAdmin)
	admin.HandleFunc("/product", h.createProductHandler).Methods(http.MethodPost)
	admin.HandleFunc("/product/{id}", h.deleteProductHandler).Methods(http.MethodDelete)
	admin.HandleFunc("/whoami", h.whoamiHandler).Methods(http.MethodGet)

	return logMiddleware(corsMiddleware(throttle.Middleware(r)))
}

type checkoutRequest struct {
	ProductID  string `json:"product_id"`
	BuyerEmail string `json:"buyer_email"`
}

type orderResponse struct {
	ID            string `json:"id"`
	InvoiceNumber string `json:"invoice_number"`
	DownloadURL   string `json:"download_url"`
}

type productRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	FileURL     string  `json:"file_url"`
}

type productResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	FileURL     string  `json:"file_url"`
}

func (h *Handler) rootHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Digital products API running"})
}

func (h *Handler) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.checkout.Checkout(req.ProductID, req.BuyerEmail)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, orderResponse{
		ID:            order.ID.String(),
		InvoiceNumber: order.InvoiceNumber,
		DownloadURL:   order.DownloadURL,
	})
}

func (h *Handler) downloadHandler(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	fileURL, err := h.download.ResolveDownload(token)
	if err != nil {
		// An order whose product has vanished is a distinct inconsistency,
		// not a bad token.
		if errors.Is(err, model.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "Product missing")
			return
		}
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"file_url": fileURL})
}

func (h *Handler) listProductsHandler(w http.ResponseWriter, _ *http.Request) {
	products, err := h.catalog.ListProducts()
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productResponse{
			ID:          p.ID.String(),
			Title:       p.Title,
			Description: p.Description,
			Price:       p.Price,
			FileURL:     p.FileURL,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) createProductHandler(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.catalog.CreateProduct(req.Title, req.Description, req.Price, req.FileURL)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": product.ID.String()})
}

func (h *Handler) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(mux.Vars(r)["id"]); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) whoamiHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"email": h.adminEmail})
}

func (h *Handler) schemaHandler(w http.ResponseWriter, _ *http.Request) {
	schema, err := h.schema()
	if err != nil {
		log.WithError(err).Error("failed to read schema")
		schema = ""
	}
	writeJSON(w, http.StatusOK, map[string]string{"schemas": schema})
}

func (h *Handler) healthHandler(w http.ResponseWriter, _ *http.Request) {
	if err := h.health(); err != nil {
		log.WithError(err).Warn("database unreachable")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"backend":  "running",
			"database": "unavailable",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"backend":  "running",
		"database": "connected",
	})
}

func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, password, ok := r.BasicAuth()
		if !ok || !strings.EqualFold(email, h.adminEmail) || password != h.adminPassword {
			w.Header().Set("WWW-Authenticate", `Basic realm="admin"`)
			writeError(w, http.StatusUnauthorized, "Invalid admin credentials")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeDomainError maps domain errors onto HTTP statuses. Unexpected errors
// are logged and surfaced without detail.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, model.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "Invalid token")
	case errors.Is(err, service.ErrEmptyBuyerEmail),
		errors.Is(err, service.ErrEmptyTitle),
		errors.Is(err, service.ErrNegativePrice),
		errors.Is(err, service.ErrEmptyFileURL):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.WithError(err).Error("request failed")
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithField("err", err).Error("write response")
	}
}
