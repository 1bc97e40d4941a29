package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	billingdomain "github.com/smallbiznis/payrequest/internal/billing/domain"
	"github.com/smallbiznis/payrequest/internal/paymentrequest/domain"
)

type generatePDFRequest struct {
	Client  *billingdomain.ClientParams  `json:"client"`
	Project *billingdomain.ProjectParams `json:"project"`
	Items   []billingdomain.ItemParams   `json:"items"`
	Options *domain.BuildOptions         `json:"options"`
}

func (s *Server) GeneratePDF(c *gin.Context) {
	var req generatePDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing required data: client, project, and items array are required")
		return
	}

	if req.Client == nil || req.Project == nil || req.Items == nil {
		respondError(c, http.StatusBadRequest, "Missing required data: client, project, and items array are required")
		return
	}

	items := make([]billingdomain.Item, 0, len(req.Items))
	for _, p := range req.Items {
		items = append(items, billingdomain.NewItem(p))
	}

	build := domain.BuildRequest{
		Client:  billingdomain.NewClient(*req.Client),
		Project: billingdomain.NewProject(*req.Project),
		Items:   items,
	}
	if req.Options != nil {
		build.Options = *req.Options
	}

	ctx := c.Request.Context()

	record, err := s.svc.Build(ctx, build)
	if err != nil {
		switch err {
		case domain.ErrNoItems, domain.ErrNonFiniteAmount, domain.ErrInvalidRate, domain.ErrInvalidUrgency:
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondInternal(c, "Failed to generate PDF", err)
		}
		return
	}

	pdfPath, err := s.svc.GeneratePDF(ctx, record)
	if err != nil {
		respondInternal(c, "Failed to generate PDF", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "PDF generated successfully",
		"data": gin.H{
			"requestNumber": record.RequestNumber,
			"pdfPath":       pdfPath,
			"total":         record.Total,
			"dueDate":       record.DueDate,
		},
	})
}

type exportedFile struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

func (s *Server) ExportAllPDFs(c *gin.Context) {
	entries, err := os.ReadDir(s.cfg.OutputDir)
	if err != nil {
		if os.IsNotExist(err) {
			respondError(c, http.StatusNotFound, "No PDFs found. Generate some payment requests first.")
			return
		}
		respondInternal(c, "Failed to export PDFs", err)
		return
	}

	files := make([]exportedFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".pdf") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			respondInternal(c, "Failed to export PDFs", err)
			return
		}
		files = append(files, exportedFile{
			Name: entry.Name(),
			Path: filepath.Join(s.cfg.OutputDir, entry.Name()),
			Size: info.Size(),
		})
	}

	if len(files) == 0 {
		respondError(c, http.StatusNotFound, "No PDFs found. Generate some payment requests first.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Found %d PDF files for export", len(files)),
		"data": gin.H{
			"totalFiles": len(files),
			"files":      files,
			"exportDate": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func (s *Server) ServePDF(c *gin.Context) {
	filename := filepath.Base(strings.TrimSpace(c.Param("filename")))
	if filename == "." || filename == ".." || !strings.HasSuffix(filename, ".pdf") {
		respondError(c, http.StatusNotFound, "PDF not found")
		return
	}

	path := filepath.Join(s.cfg.OutputDir, filename)
	if _, err := os.Stat(path); err != nil {
		respondError(c, http.StatusNotFound, "PDF not found")
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.File(path)
}

// GetPaymentRequest answers with a freshly built demo record. The path id
// is accepted but not used for a ledger lookup; whether lookup-by-id was
// ever intended upstream is an open product question.
func (s *Server) GetPaymentRequest(c *gin.Context) {
	sampleClient := billingdomain.NewClient(billingdomain.ClientParams{
		Name:  "Sample Client",
		Email: "client@example.com",
	})
	sampleProject := billingdomain.NewProject(billingdomain.ProjectParams{
		Name:        "Sample Project",
		Description: "A sample project for demonstration",
	})
	sampleItems := []billingdomain.Item{
		billingdomain.NewServiceItem(billingdomain.ItemParams{
			Name:        "Sample Service",
			Description: "A sample service item",
			Quantity:    1,
			UnitPrice:   100,
		}),
	}

	record, err := s.svc.Build(c.Request.Context(), domain.BuildRequest{
		Client:  sampleClient,
		Project: sampleProject,
		Items:   sampleItems,
	})
	if err != nil {
		respondInternal(c, "Failed to get payment request", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    record,
	})
}
