package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rentora-backend/internal/handlers"
	"rentora-backend/internal/middleware"
)

func NewRouter(
	propertyHandler *handlers.PropertyHandler,
	unitHandler *handlers.UnitHandler,
	tenantHandler *handlers.TenantHandler,
	leaseHandler *handlers.LeaseHandler,
	invoiceHandler *handlers.InvoiceHandler,
	paymentHandler *handlers.PaymentHandler,
	billingHandler *handlers.BillingHandler,
	reportHandler *handlers.ReportHandler,
	webhookHandler *handlers.WebhookHandler,
	healthHandler *handlers.HealthHandler,
	cronSecret string,
) *mux.Router {
	r := mux.NewRouter()

	// Health and metrics
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/system", healthHandler.SystemHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Properties
	propertiesAPI := r.PathPrefix("/api/properties").Subrouter()
	propertiesAPI.HandleFunc("", propertyHandler.ListProperties).Methods("GET")
	propertiesAPI.HandleFunc("", propertyHandler.CreateProperty).Methods("POST")
	propertiesAPI.HandleFunc("/{id}", propertyHandler.GetProperty).Methods("GET")
	propertiesAPI.HandleFunc("/{id}", propertyHandler.UpdateProperty).Methods("PUT")
	propertiesAPI.HandleFunc("/{id}", propertyHandler.DeleteProperty).Methods("DELETE")

	// Units
	unitsAPI := r.PathPrefix("/api/units").Subrouter()
	unitsAPI.HandleFunc("", unitHandler.ListUnits).Methods("GET")
	unitsAPI.HandleFunc("", unitHandler.CreateUnit).Methods("POST")
	unitsAPI.HandleFunc("/{id}", unitHandler.GetUnit).Methods("GET")
	unitsAPI.HandleFunc("/{id}", unitHandler.UpdateUnit).Methods("PUT")

	// Tenants
	tenantsAPI := r.PathPrefix("/api/tenants").Subrouter()
	tenantsAPI.HandleFunc("", tenantHandler.ListTenants).Methods("GET")
	tenantsAPI.HandleFunc("", tenantHandler.CreateTenant).Methods("POST")
	tenantsAPI.HandleFunc("/{id}", tenantHandler.GetTenant).Methods("GET")
	tenantsAPI.HandleFunc("/{id}", tenantHandler.UpdateTenant).Methods("PUT")
	tenantsAPI.HandleFunc("/{id}/statement", tenantHandler.GetStatement).Methods("GET")

	// Leases
	leasesAPI := r.PathPrefix("/api/leases").Subrouter()
	leasesAPI.HandleFunc("", leaseHandler.ListLeases).Methods("GET")
	leasesAPI.HandleFunc("", leaseHandler.CreateLease).Methods("POST")
	leasesAPI.HandleFunc("/{id}", leaseHandler.GetLease).Methods("GET")
	leasesAPI.HandleFunc("/{id}/terminate", leaseHandler.TerminateLease).Methods("POST")

	// Invoices
	invoicesAPI := r.PathPrefix("/api/invoices").Subrouter()
	invoicesAPI.HandleFunc("", invoiceHandler.ListInvoices).Methods("GET")
	invoicesAPI.HandleFunc("/approve", invoiceHandler.ApproveInvoices).Methods("POST")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.GetInvoice).Methods("GET")
	invoicesAPI.HandleFunc("/{invoice_id}/payments", paymentHandler.ListByInvoice).Methods("GET")

	// Payments
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.HandleFunc("", paymentHandler.RecordPayment).Methods("POST")
	paymentsAPI.HandleFunc("/lease/{lease_id}", paymentHandler.ListByLease).Methods("GET")

	// Billing trigger, guarded by the scheduler's shared secret
	billingAPI := r.PathPrefix("/api/billing").Subrouter()
	billingAPI.Use(middleware.CronAuth(cronSecret))
	billingAPI.HandleFunc("/generate", billingHandler.GenerateInvoices).Methods("POST")

	// Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.HandleFunc("/summary", reportHandler.GetSummary).Methods("GET")
	reportsAPI.HandleFunc("/collections", reportHandler.GetCollectionsCSV).Methods("GET")
	reportsAPI.HandleFunc("/archive", middleware.CronAuth(cronSecret)(
		http.HandlerFunc(reportHandler.ArchiveMonth)).ServeHTTP).Methods("POST")

	// Gateway callbacks
	r.HandleFunc("/api/webhooks/whatsapp", webhookHandler.WhatsAppStatus).Methods("POST")

	return r
}
