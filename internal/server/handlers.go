package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Patrykz94/OrderReader-sub000/internal/importer"
	"github.com/Patrykz94/OrderReader-sub000/internal/model"
)

// Response is the envelope every API endpoint returns.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// importOrders accepts one or more uploaded order documents and streams the
// import progress back as SSE events.
func (s *Server) importOrders(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files uploaded"})
		return
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to prepare upload directory"})
		return
	}

	var paths []string
	for _, uploaded := range files {
		path := filepath.Join(s.uploadDir,
			fmt.Sprintf("import_%d_%s", time.Now().UnixNano(), filepath.Base(uploaded.Filename)))
		if err := c.SaveUploadedFile(uploaded, path); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save uploaded file"})
			return
		}
		paths = append(paths, path)
	}
	defer func() {
		for _, path := range paths {
			os.Remove(path)
		}
	}()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	progress := s.coordinator.Import(importer.ImportOptions{FilePaths: paths})

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}

	for event := range progress {
		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}

// ==================== Orders ====================

func (s *Server) listOrders(c *gin.Context) {
	success(c, s.library.Orders())
}

func (s *Server) listOrderIDs(c *gin.Context) {
	success(c, s.library.UniqueOrderIDs())
}

func (s *Server) deleteOrders(c *gin.Context) {
	removed := s.library.RemoveOrdersWithID(c.Param("id"))
	if removed == 0 {
		errorResponse(c, 4001, "no orders with that id")
		return
	}
	success(c, gin.H{"removed": removed})
}

// ==================== Export ====================

func (s *Server) exportCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="orders.csv"`)
	if err := s.exporter.WriteCSV(c.Writer); err != nil {
		errorResponse(c, 5001, err.Error())
	}
}

func (s *Server) exportWorkbook(c *gin.Context) {
	f, err := s.exporter.Workbook()
	if err != nil {
		errorResponse(c, 5002, err.Error())
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="orders.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		errorResponse(c, 5002, err.Error())
	}
}

// exportCSVFiles writes one CSV file per order into the exports directory and
// returns the paths, for users who feed the files to the ordering system by
// hand.
func (s *Server) exportCSVFiles(c *gin.Context) {
	paths, err := s.exporter.ExportCSVFiles(s.exportDir)
	if err != nil {
		errorResponse(c, 5012, err.Error())
		return
	}
	success(c, gin.H{"files": paths})
}

// ==================== Customers ====================

func (s *Server) listCustomers(c *gin.Context) {
	customers, err := s.store.ListCustomers()
	if err != nil {
		errorResponse(c, 5003, err.Error())
		return
	}
	success(c, customers)
}

func (s *Server) createCustomer(c *gin.Context) {
	var customer model.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		errorResponse(c, 1001, "invalid customer payload")
		return
	}
	if customer.Name == "" || customer.OrderName == "" {
		errorResponse(c, 1002, "name and orderName are required")
		return
	}
	if err := s.store.AddCustomer(&customer); err != nil {
		errorResponse(c, 5004, err.Error())
		return
	}
	success(c, customer)
}

func (s *Server) deleteCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		errorResponse(c, 1003, "invalid customer id")
		return
	}
	if err := s.store.DeleteCustomer(id); err != nil {
		errorResponse(c, 5005, err.Error())
		return
	}
	success(c, gin.H{"deleted": true})
}

// ==================== Depots ====================

func (s *Server) listDepots(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		errorResponse(c, 1003, "invalid customer id")
		return
	}
	depots, err := s.store.ListDepots(customerID)
	if err != nil {
		errorResponse(c, 5006, err.Error())
		return
	}
	success(c, depots)
}

func (s *Server) createDepot(c *gin.Context) {
	var depot model.Depot
	if err := c.ShouldBindJSON(&depot); err != nil {
		errorResponse(c, 1001, "invalid depot payload")
		return
	}
	if depot.CustomerID == 0 || depot.Name == "" || depot.OrderName == "" {
		errorResponse(c, 1002, "customerId, name and orderName are required")
		return
	}
	if err := s.store.AddDepot(&depot); err != nil {
		errorResponse(c, 5007, err.Error())
		return
	}
	success(c, depot)
}

func (s *Server) deleteDepot(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		errorResponse(c, 1003, "invalid depot id")
		return
	}
	if err := s.store.DeleteDepot(id); err != nil {
		errorResponse(c, 5008, err.Error())
		return
	}
	success(c, gin.H{"deleted": true})
}

// ==================== Products ====================

func (s *Server) listProducts(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		errorResponse(c, 1003, "invalid customer id")
		return
	}
	products, err := s.store.ListProducts(customerID)
	if err != nil {
		errorResponse(c, 5009, err.Error())
		return
	}
	success(c, products)
}

func (s *Server) createProduct(c *gin.Context) {
	var product model.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		errorResponse(c, 1001, "invalid product payload")
		return
	}
	if product.CustomerID == 0 || product.Name == "" || product.OrderName == "" {
		errorResponse(c, 1002, "customerId, name and orderName are required")
		return
	}
	if err := s.store.AddProduct(&product); err != nil {
		errorResponse(c, 5010, err.Error())
		return
	}
	success(c, product)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		errorResponse(c, 1003, "invalid product id")
		return
	}
	if err := s.store.DeleteProduct(id); err != nil {
		errorResponse(c, 5011, err.Error())
		return
	}
	success(c, gin.H{"deleted": true})
}
