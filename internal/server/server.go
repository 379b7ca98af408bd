// Package server exposes the local HTTP API the desktop UI talks to.
package server

import (
	"log"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/Patrykz94/OrderReader-sub000/internal/config"
	"github.com/Patrykz94/OrderReader-sub000/internal/exporter"
	"github.com/Patrykz94/OrderReader-sub000/internal/importer"
	"github.com/Patrykz94/OrderReader-sub000/internal/model"
	"github.com/Patrykz94/OrderReader-sub000/internal/store"
)

// Server wires the catalog store, the import coordinator and the HTTP routes.
type Server struct {
	router      *gin.Engine
	store       *store.Store
	library     *model.OrdersLibrary
	coordinator *importer.Coordinator
	exporter    *exporter.Exporter
	uploadDir   string
	exportDir   string
}

// NewServer builds the server from configuration, opening the catalog
// database inside the data directory.
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "orderreader.db")

	catalogStore, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	library := model.NewOrdersLibrary()
	notifier := &importer.StandardNotifier{DefaultAnswer: cfg.Business.ContinueOnError}

	s := &Server{
		router:      gin.Default(),
		store:       catalogStore,
		library:     library,
		coordinator: importer.NewCoordinator(catalogStore, library, notifier, cfg.Business.DeliveryLeadDays),
		exporter:    exporter.NewExporter(catalogStore, library),
		uploadDir:   filepath.Join(dataDir, "uploads"),
		exportDir:   filepath.Join(dataDir, "exports"),
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		api.POST("/import", s.importOrders)

		api.GET("/orders", s.listOrders)
		api.GET("/orders/ids", s.listOrderIDs)
		api.DELETE("/orders/:id", s.deleteOrders)

		api.GET("/export/csv", s.exportCSV)
		api.GET("/export/xlsx", s.exportWorkbook)
		api.GET("/export/files", s.exportCSVFiles)

		api.GET("/customers", s.listCustomers)
		api.POST("/customers", s.createCustomer)
		api.DELETE("/customers/:id", s.deleteCustomer)

		api.GET("/customers/:id/depots", s.listDepots)
		api.POST("/depots", s.createDepot)
		api.DELETE("/depots/:id", s.deleteDepot)

		api.GET("/customers/:id/products", s.listProducts)
		api.POST("/products", s.createProduct)
		api.DELETE("/products/:id", s.deleteProduct)
	}
}

// Run starts the HTTP server on addr.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close releases the underlying database.
func (s *Server) Close() error {
	return s.store.Close()
}
