package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	_ "github.com/man2tidore/etamu-backend/migrations"
	"github.com/man2tidore/etamu-backend/utils"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/spf13/cobra"
)

func main() {
	app := pocketbase.New()

	// Register migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: false,
	})

	// Register seed-settings command to create the settings document ahead
	// of the first request (the first read seeds it anyway)
	app.RootCmd.AddCommand(&cobra.Command{
		Use:   "seed-settings",
		Short: "Create the settings document with default values if missing",
		Run: func(cmd *cobra.Command, args []string) {
			if err := app.Bootstrap(); err != nil {
				log.Fatalf("Failed to bootstrap: %v", err)
			}
			record, err := ensureSettings(app)
			if err != nil {
				log.Fatalf("Seeding failed: %v", err)
			}
			fmt.Printf("Settings document ready: %s\n", record.Id)
		},
	})

	// Register export-guests command for producing the recap from the CLI
	exportCmd := &cobra.Command{
		Use:   "export-guests",
		Short: "Write the guest log recap (xlsx and pdf) to the given directory",
		Run: func(cmd *cobra.Command, args []string) {
			if err := app.Bootstrap(); err != nil {
				log.Fatalf("Failed to bootstrap: %v", err)
			}
			outDir, _ := cmd.Flags().GetString("out")
			search, _ := cmd.Flags().GetString("search")
			purpose, _ := cmd.Flags().GetString("purpose")
			if err := runGuestExport(app, outDir, search, purpose); err != nil {
				log.Fatalf("Export failed: %v", err)
			}
		},
	}
	exportCmd.Flags().String("out", ".", "output directory")
	exportCmd.Flags().String("search", "", "search filter (name or institution)")
	exportCmd.Flags().String("purpose", PurposeAll, "purpose filter")
	app.RootCmd.AddCommand(exportCmd)

	// Register backup-now command for an immediate S3 backup
	app.RootCmd.AddCommand(&cobra.Command{
		Use:   "backup-now",
		Short: "Create a database backup and upload it to S3 immediately",
		Run: func(cmd *cobra.Command, args []string) {
			if err := app.Bootstrap(); err != nil {
				log.Fatalf("Failed to bootstrap: %v", err)
			}
			if err := RunBackupNow(app); err != nil {
				log.Fatalf("Backup failed: %v", err)
			}
			fmt.Println("Backup complete")
		},
	})

	// OnServe hook - runs when the server starts
	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Security headers middleware
		e.Router.BindFunc(securityHeadersMiddleware)

		// Register custom routes
		registerRoutes(e, app)

		// Serve frontend SPA
		serveFrontend(e)

		// Start the backup scheduler (runs at 3 AM WIT daily)
		go scheduleBackups(app)

		return e.Next()
	})

	// Register audit logging hooks
	registerAuditHooks(app)

	// Start the application
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// securityHeadersMiddleware adds security headers to all responses
func securityHeadersMiddleware(e *core.RequestEvent) error {
	h := e.Response.Header()

	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("X-XSS-Protection", "1; mode=block")

	// HSTS - enforce HTTPS for 1 year, include subdomains
	h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")

	// Content Security Policy - data: images allowed because the logo and
	// kiosk slides are stored as data URLs
	h.Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'; frame-ancestors 'none'")

	// Referrer Policy - don't leak URLs to external sites
	h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

	// Permissions Policy - disable unused browser features
	h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()")

	return e.Next()
}

// registerRoutes sets up all custom API endpoints
func registerRoutes(e *core.ServeEvent, app *pocketbase.PocketBase) {
	// Public endpoints (rate limited to keep the kiosk from being abused)
	e.Router.POST("/api/guests", func(re *core.RequestEvent) error {
		return handleGuestCreate(re, app)
	}).BindFunc(utils.RateLimitPublic)

	e.Router.GET("/api/settings/public", func(re *core.RequestEvent) error {
		return handleSettingsPublic(re, app)
	}).BindFunc(utils.RateLimitPublic)

	e.Router.GET("/api/kiosk", func(re *core.RequestEvent) error {
		return handleKiosk(re, app)
	}).BindFunc(utils.RateLimitPublic)

	e.Router.GET("/api/kiosk/qr", func(re *core.RequestEvent) error {
		return handleKioskQR(re, app)
	}).BindFunc(utils.RateLimitPublic)

	// Admin session gate
	e.Router.POST("/api/auth/login", func(re *core.RequestEvent) error {
		return handleLogin(re, app)
	}).BindFunc(utils.RateLimitLogin)

	e.Router.POST("/api/auth/logout", func(re *core.RequestEvent) error {
		return handleLogout(re, app)
	}).BindFunc(utils.RateLimitPublic)

	e.Router.GET("/api/auth/session", func(re *core.RequestEvent) error {
		return handleSessionCheck(re, app)
	}).BindFunc(utils.RateLimitPublic)

	// Dashboard (require admin session)
	e.Router.GET("/api/guests", func(re *core.RequestEvent) error {
		return handleGuestsList(re, app)
	}).BindFunc(utils.RateLimitAdmin).BindFunc(utils.RequireAdminSession)

	e.Router.DELETE("/api/guests/{id}", func(re *core.RequestEvent) error {
		return handleGuestDelete(re, app)
	}).BindFunc(utils.RateLimitAdmin).BindFunc(utils.RequireAdminSession)

	e.Router.GET("/api/dashboard/stats", func(re *core.RequestEvent) error {
		return handleDashboardStats(re, app)
	}).BindFunc(utils.RateLimitAdmin).BindFunc(utils.RequireAdminSession)

	// Export pipeline
	e.Router.GET("/api/export/xlsx", func(re *core.RequestEvent) error {
		return handleExportXLSX(re, app)
	}).BindFunc(utils.RateLimitAdmin).BindFunc(utils.RequireAdminSession)

	e.Router.GET("/api/export/pdf", func(re *core.RequestEvent) error {
		return handleExportPDF(re, app)
	}).BindFunc(utils.RateLimitAdmin).BindFunc(utils.RequireAdminSession)

	// Settings
	e.Router.GET("/api/settings", func(re *core.RequestEvent) error {
		return handleSettingsGet(re, app)
	}).BindFunc(utils.RateLimitAdmin).BindFunc(utils.RequireAdminSession)

	e.Router.PATCH("/api/settings", func(re *core.RequestEvent) error {
		return handleSettingsUpdate(re, app)
	}).BindFunc(utils.RateLimitAdmin).BindFunc(utils.RequireAdminSession)

	e.Router.POST("/api/settings/password", func(re *core.RequestEvent) error {
		return handleChangePassword(re, app)
	}).BindFunc(utils.RateLimitAdmin).BindFunc(utils.RequireAdminSession)

	log.Printf("[Routes] Registered API endpoints")
}

// serveFrontend serves the SPA frontend
func serveFrontend(e *core.ServeEvent) {
	// Check if frontend dist exists
	staticDir := "./pb_public"
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		staticDir = "../frontend/dist"
	}

	// Serve static files
	e.Router.GET("/{path...}", func(re *core.RequestEvent) error {
		path := re.Request.PathValue("path")

		// Don't handle API routes - let them 404 if not matched
		if len(path) >= 4 && path[:4] == "api/" {
			return re.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
		}

		// Root path or empty - serve index.html
		if path == "" || path == "/" {
			return re.FileFS(os.DirFS(staticDir), "index.html")
		}

		filePath := staticDir + "/" + path

		// Check if file exists (and is not a directory)
		if info, err := os.Stat(filePath); err == nil && !info.IsDir() {
			return re.FileFS(os.DirFS(staticDir), path)
		}

		// SPA fallback - serve index.html for client-side routing
		// (/, /guest-form, /success, /login, /admin, /kiosk)
		return re.FileFS(os.DirFS(staticDir), "index.html")
	})
}

// registerAuditHooks logs create/delete on the guest log and settings
// updates, whichever route or hook produced them.
func registerAuditHooks(app *pocketbase.PocketBase) {
	app.OnRecordAfterCreateSuccess(utils.CollectionGuests).BindFunc(func(e *core.RecordEvent) error {
		utils.LogAudit(app, utils.AuditEntry{
			Action:       "create",
			ResourceType: utils.CollectionGuests,
			ResourceID:   e.Record.Id,
			Status:       "success",
		})
		return e.Next()
	})

	app.OnRecordAfterDeleteSuccess(utils.CollectionGuests).BindFunc(func(e *core.RecordEvent) error {
		utils.LogAudit(app, utils.AuditEntry{
			Action:       "delete",
			ResourceType: utils.CollectionGuests,
			ResourceID:   e.Record.Id,
			Status:       "success",
		})
		return e.Next()
	})

	// Settings updates are audited without field values so the password
	// never lands in the audit log
	app.OnRecordAfterUpdateSuccess(utils.CollectionSettings).BindFunc(func(e *core.RecordEvent) error {
		utils.LogAudit(app, utils.AuditEntry{
			Action:       "update",
			ResourceType: utils.CollectionSettings,
			ResourceID:   e.Record.Id,
			Status:       "success",
		})
		return e.Next()
	})
}

// runGuestExport writes both export artifacts for the filtered view.
func runGuestExport(app *pocketbase.PocketBase, outDir, search, purpose string) error {
	entries, err := fetchAllEntries(app)
	if err != nil {
		return fmt.Errorf("load guests: %w", err)
	}
	visible := VisibleEntries(entries, search, purpose)

	settings, err := loadSettings(app)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	now := time.Now()

	xlsxData, err := BuildWorkbook(visible)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	xlsxPath := filepath.Join(outDir, ExportXLSXFilename(now))
	if err := os.WriteFile(xlsxPath, xlsxData, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", xlsxPath, err)
	}

	pdfData, err := BuildPDF(visible, settings.UnitName, settings.SchoolName, now)
	if err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	pdfPath := filepath.Join(outDir, ExportPDFFilename(now))
	if err := os.WriteFile(pdfPath, pdfData, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", pdfPath, err)
	}

	fmt.Printf("Exported %d entries to %s and %s\n", len(visible), xlsxPath, pdfPath)
	return nil
}
