package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sop-manager/handlers"
	"sop-manager/middleware"
	"sop-manager/models"
	"sop-manager/repositories"
	"sop-manager/services"
)

type IntegrationTestSuite struct {
	suite.Suite
	db          *gorm.DB
	router      *gin.Engine
	adminToken  string
	adminID     uint
	userToken   string
	userID      uint
	settingRepo repositories.SettingRepository
}

func (suite *IntegrationTestSuite) SetupSuite() {
	// Set test environment
	os.Setenv("JWT_SECRET", "test-secret")

	dsn := "host=localhost port=5432 user=myuser password=mypassword dbname=sop_test_db sslmode=disable"
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		suite.T().Fatal("Failed to connect to test database:", err)
	}

	suite.db = db

	err = db.AutoMigrate(
		&models.User{},
		&models.SOP{},
		&models.SOPStep{},
		&models.SOPResponsibility{},
		&models.SOPTroubleshootingItem{},
		&models.SOPRevision{},
		&models.SOPVersion{},
		&models.SOPApproval{},
		&models.Setting{},
		&models.WorkflowStep{},
		&models.WorkflowTransition{},
		&models.Questionnaire{},
		&models.ShadowingObservation{},
	)
	if err != nil {
		suite.T().Fatal("Failed to migrate test database:", err)
	}

	suite.setupRouter()
}

func (suite *IntegrationTestSuite) setupRouter() {
	gin.SetMode(gin.TestMode)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(suite.db)
	sopRepo := repositories.NewSOPRepository(suite.db)
	versionRepo := repositories.NewSOPVersionRepository(suite.db)
	approvalRepo := repositories.NewSOPApprovalRepository(suite.db)
	settingRepo := repositories.NewSettingRepository(suite.db)
	workflowRepo := repositories.NewWorkflowRepository(suite.db)
	questionnaireRepo := repositories.NewQuestionnaireRepository(suite.db)
	shadowingRepo := repositories.NewShadowingRepository(suite.db)
	suite.settingRepo = settingRepo

	// Initialize services
	authService := services.NewAuthService(userRepo)
	diffService := services.NewDiffService(versionRepo)
	sopService := services.NewSOPService(sopRepo, questionnaireRepo, shadowingRepo, workflowRepo, userRepo)
	versionService := services.NewVersionService(versionRepo, sopRepo, diffService)
	approvalService := services.NewApprovalService(approvalRepo, sopRepo, versionRepo, settingRepo, diffService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	sopHandler := handlers.NewSOPHandler(sopService)
	versionHandler := handlers.NewVersionHandler(versionService)
	approvalHandler := handlers.NewApprovalHandler(approvalService)

	router := gin.New()

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			sops := protected.Group("/sops")
			{
				sops.GET("", sopHandler.GetSOPs)
				sops.POST("", sopHandler.CreateSOP)
				sops.GET("/:id", sopHandler.GetSOP)
				sops.PUT("/:id", sopHandler.UpdateSOP)
				sops.PATCH("/:id/status", sopHandler.PatchStatus)
				sops.PUT("/:id/steps/:stepId", sopHandler.UpdateStep)

				sops.GET("/:id/versions", versionHandler.GetVersions)
				sops.POST("/:id/versions", versionHandler.CreateVersion)
				sops.GET("/:id/versions/:versionNumber/changes", versionHandler.GetVersionChanges)
				sops.POST("/:id/versions/:versionNumber/restore", versionHandler.RestoreVersion)

				sops.POST("/:id/submit-for-approval", approvalHandler.Submit)
			}

			approvals := protected.Group("/approvals")
			approvals.Use(middleware.RequireRole(string(models.RoleAdmin)))
			{
				approvals.GET("", approvalHandler.GetPending)
				approvals.GET("/count", approvalHandler.CountPending)
				approvals.POST("/:id/approve", approvalHandler.Approve)
				approvals.POST("/:id/reject", approvalHandler.Reject)
			}
		}
	}

	suite.router = router
}

func (suite *IntegrationTestSuite) TearDownSuite() {
	suite.db.Exec("DROP TABLE IF EXISTS sop_approvals")
	suite.db.Exec("DROP TABLE IF EXISTS sop_versions")
	suite.db.Exec("DROP TABLE IF EXISTS sop_troubleshooting_items")
	suite.db.Exec("DROP TABLE IF EXISTS sop_revisions")
	suite.db.Exec("DROP TABLE IF EXISTS sop_steps")
	suite.db.Exec("DROP TABLE IF EXISTS sop_responsibilities")
	suite.db.Exec("DROP TABLE IF EXISTS questionnaires")
	suite.db.Exec("DROP TABLE IF EXISTS shadowing_observations")
	suite.db.Exec("DROP TABLE IF EXISTS sops")
	suite.db.Exec("DROP TABLE IF EXISTS workflow_transitions")
	suite.db.Exec("DROP TABLE IF EXISTS workflow_steps")
	suite.db.Exec("DROP TABLE IF EXISTS settings")
	suite.db.Exec("DROP TABLE IF EXISTS users")
}

func (suite *IntegrationTestSuite) SetupTest() {
	suite.db.Exec("TRUNCATE TABLE sop_approvals RESTART IDENTITY CASCADE")
	suite.db.Exec("TRUNCATE TABLE sop_versions RESTART IDENTITY CASCADE")
	suite.db.Exec("TRUNCATE TABLE sop_steps RESTART IDENTITY CASCADE")
	suite.db.Exec("TRUNCATE TABLE sop_responsibilities RESTART IDENTITY CASCADE")
	suite.db.Exec("TRUNCATE TABLE sops RESTART IDENTITY CASCADE")
	suite.db.Exec("TRUNCATE TABLE settings RESTART IDENTITY CASCADE")
	suite.db.Exec("TRUNCATE TABLE users RESTART IDENTITY CASCADE")

	suite.adminToken, suite.adminID = suite.registerUser("Admin User", "admin@example.com", models.RoleAdmin)
	suite.userToken, suite.userID = suite.registerUser("Regular User", "user@example.com", models.RoleUser)
}

func (suite *IntegrationTestSuite) registerUser(name, email string, role models.UserRole) (string, uint) {
	registerPayload := models.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "password123",
		Role:     role,
	}

	body, _ := json.Marshal(registerPayload)
	req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var registerResponse struct {
		Code        int                 `json:"code"`
		CodeMessage string              `json:"code_message"`
		CodeType    string              `json:"code_type"`
		Data        models.AuthResponse `json:"data"`
	}

	err := json.Unmarshal(w.Body.Bytes(), &registerResponse)
	suite.NoError(err)

	return registerResponse.Data.Token, registerResponse.Data.User.ID
}

func (suite *IntegrationTestSuite) do(method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if payload != nil {
		body, _ := json.Marshal(payload)
		req = httptest.NewRequest(method, path, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *IntegrationTestSuite) createSOP(token string) models.SOP {
	w := suite.do("POST", "/api/v1/sops", token, nil)
	suite.Equal(http.StatusCreated, w.Code)

	var sop models.SOP
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &sop))
	return sop
}

func (suite *IntegrationTestSuite) TestCreateSOPStartsInDraft() {
	sop := suite.createSOP(suite.userToken)

	suite.Equal(models.StatusDraft, sop.Status)
	suite.Equal(1, sop.Version)
	suite.Equal("SOP-0001", sop.SOPNumber)
	suite.Len(sop.Steps, 1)

	// No snapshot exists until the first submit or manual version.
	w := suite.do("GET", fmt.Sprintf("/api/v1/sops/%d/versions", sop.ID), suite.userToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	var versions []models.SOPVersion
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &versions))
	suite.Empty(versions)
}

func (suite *IntegrationTestSuite) TestSubmitApproveFlow() {
	sop := suite.createSOP(suite.userToken)

	// Submit for approval
	w := suite.do("POST", fmt.Sprintf("/api/v1/sops/%d/submit-for-approval", sop.ID), suite.userToken, nil)
	suite.Equal(http.StatusCreated, w.Code)

	var approval models.SOPApproval
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &approval))
	suite.Equal(models.ApprovalPending, approval.Status)
	suite.Equal(suite.userID, approval.RequestedBy)

	// Submit snapshots the current state
	w = suite.do("GET", fmt.Sprintf("/api/v1/sops/%d/versions", sop.ID), suite.userToken, nil)
	var versions []models.SOPVersion
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &versions))
	suite.Len(versions, 1)
	suite.Equal("Submitted for approval", versions[0].ChangeSummary)

	// SOP is now pending approval and locked against edits
	w = suite.do("GET", fmt.Sprintf("/api/v1/sops/%d", sop.ID), suite.userToken, nil)
	var detail models.SOPDetail
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &detail))
	suite.Equal(models.StatusPendingApproval, detail.Status)

	w = suite.do("PUT", fmt.Sprintf("/api/v1/sops/%d", sop.ID), suite.userToken, models.UpdateSOPRequest{Purpose: "sneaky edit"})
	suite.Equal(http.StatusForbidden, w.Code)

	// A second submit conflicts
	w = suite.do("POST", fmt.Sprintf("/api/v1/sops/%d/submit-for-approval", sop.ID), suite.userToken, nil)
	suite.Equal(http.StatusConflict, w.Code)

	// Regular users cannot see the queue
	w = suite.do("GET", "/api/v1/approvals", suite.userToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	// Admin approves
	w = suite.do("GET", "/api/v1/approvals/count", suite.adminToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"count":1`)

	w = suite.do("POST", fmt.Sprintf("/api/v1/approvals/%d/approve", approval.ID), suite.adminToken, models.ResolveApprovalRequest{Comments: "looks good"})
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do("GET", fmt.Sprintf("/api/v1/sops/%d", sop.ID), suite.userToken, nil)
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &detail))
	suite.Equal(models.StatusActive, detail.Status)
	suite.NotNil(detail.ApprovedBy)
	suite.Equal(suite.adminID, *detail.ApprovedBy)
	suite.NotNil(detail.ReviewDueDate)

	// Double resolution conflicts
	w = suite.do("POST", fmt.Sprintf("/api/v1/approvals/%d/approve", approval.ID), suite.adminToken, models.ResolveApprovalRequest{Comments: "again"})
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *IntegrationTestSuite) TestRejectRequiresComments() {
	sop := suite.createSOP(suite.userToken)

	w := suite.do("POST", fmt.Sprintf("/api/v1/sops/%d/submit-for-approval", sop.ID), suite.userToken, nil)
	suite.Equal(http.StatusCreated, w.Code)

	var approval models.SOPApproval
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &approval))

	// Rejection without comments fails and leaves everything untouched
	w = suite.do("POST", fmt.Sprintf("/api/v1/approvals/%d/reject", approval.ID), suite.adminToken, models.ResolveApprovalRequest{Comments: "   "})
	suite.Equal(http.StatusBadRequest, w.Code)

	var detail models.SOPDetail
	w = suite.do("GET", fmt.Sprintf("/api/v1/sops/%d", sop.ID), suite.userToken, nil)
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &detail))
	suite.Equal(models.StatusPendingApproval, detail.Status)

	// With comments it lands back in draft
	w = suite.do("POST", fmt.Sprintf("/api/v1/approvals/%d/reject", approval.ID), suite.adminToken, models.ResolveApprovalRequest{Comments: "needs more detail"})
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do("GET", fmt.Sprintf("/api/v1/sops/%d", sop.ID), suite.userToken, nil)
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &detail))
	suite.Equal(models.StatusDraft, detail.Status)
}

func (suite *IntegrationTestSuite) TestDragStatusRules() {
	sop := suite.createSOP(suite.userToken)

	// Owner can drag draft -> review and back
	w := suite.do("PATCH", fmt.Sprintf("/api/v1/sops/%d/status", sop.ID), suite.userToken, models.PatchStatusRequest{Status: models.StatusReview})
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do("PATCH", fmt.Sprintf("/api/v1/sops/%d/status", sop.ID), suite.userToken, models.PatchStatusRequest{Status: models.StatusDraft})
	suite.Equal(http.StatusOK, w.Code)

	// Dragging straight to active or pending_approval is rejected
	w = suite.do("PATCH", fmt.Sprintf("/api/v1/sops/%d/status", sop.ID), suite.userToken, models.PatchStatusRequest{Status: models.StatusActive})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do("PATCH", fmt.Sprintf("/api/v1/sops/%d/status", sop.ID), suite.adminToken, models.PatchStatusRequest{Status: models.StatusPendingApproval})
	suite.Equal(http.StatusBadRequest, w.Code)

	// A stranger cannot drag someone else's SOP
	strangerToken, _ := suite.registerUser("Stranger", "stranger@example.com", models.RoleUser)
	w = suite.do("PATCH", fmt.Sprintf("/api/v1/sops/%d/status", sop.ID), strangerToken, models.PatchStatusRequest{Status: models.StatusReview})
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *IntegrationTestSuite) TestVersionDiffAndRestore() {
	sop := suite.createSOP(suite.userToken)

	// Fill in some content and snapshot it
	update := models.UpdateSOPRequest{ProcessName: "Widget assembly", Purpose: "Original purpose"}
	w := suite.do("PUT", fmt.Sprintf("/api/v1/sops/%d", sop.ID), suite.userToken, update)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do("POST", fmt.Sprintf("/api/v1/sops/%d/versions", sop.ID), suite.userToken, models.CreateVersionRequest{ChangeSummary: "first cut"})
	suite.Equal(http.StatusCreated, w.Code)

	var v1 models.SOPVersion
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &v1))
	suite.Equal(1, v1.VersionNumber)

	// Change the purpose and snapshot again
	update.Purpose = "Improved purpose"
	w = suite.do("PUT", fmt.Sprintf("/api/v1/sops/%d", sop.ID), suite.userToken, update)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do("POST", fmt.Sprintf("/api/v1/sops/%d/versions", sop.ID), suite.userToken, models.CreateVersionRequest{})
	suite.Equal(http.StatusCreated, w.Code)

	var v2 models.SOPVersion
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &v2))
	suite.Equal(2, v2.VersionNumber)
	suite.Equal("Version 2", v2.ChangeSummary)

	// The diff of v2 against v1 is the single purpose change
	w = suite.do("GET", fmt.Sprintf("/api/v1/sops/%d/versions/2/changes", sop.ID), suite.userToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	var changesResp struct {
		Changes []models.ChangeItem `json:"changes"`
	}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &changesResp))
	suite.Len(changesResp.Changes, 1)
	suite.Equal("purpose", changesResp.Changes[0].Field)
	suite.Equal("Original purpose", changesResp.Changes[0].Before)
	suite.Equal("Improved purpose", changesResp.Changes[0].After)

	// The diff of v1 is the synthetic initial submission
	w = suite.do("GET", fmt.Sprintf("/api/v1/sops/%d/versions/1/changes", sop.ID), suite.userToken, nil)
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &changesResp))
	suite.Len(changesResp.Changes, 1)
	suite.Equal("Initial submission", changesResp.Changes[0].Label)

	// Restore v1: content reverts, version count grows
	w = suite.do("POST", fmt.Sprintf("/api/v1/sops/%d/versions/1/restore", sop.ID), suite.userToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	var restored models.SOPVersion
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &restored))
	suite.Equal(3, restored.VersionNumber)
	suite.Equal("Restored from version 1", restored.ChangeSummary)

	var detail models.SOPDetail
	w = suite.do("GET", fmt.Sprintf("/api/v1/sops/%d", sop.ID), suite.userToken, nil)
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &detail))
	suite.Equal("Original purpose", detail.Purpose)
}

func (suite *IntegrationTestSuite) TestOverdueActiveSOPDemotedOnListRead() {
	sop := suite.createSOP(suite.userToken)

	w := suite.do("POST", fmt.Sprintf("/api/v1/sops/%d/submit-for-approval", sop.ID), suite.userToken, nil)
	suite.Equal(http.StatusCreated, w.Code)

	var approval models.SOPApproval
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &approval))

	w = suite.do("POST", fmt.Sprintf("/api/v1/approvals/%d/approve", approval.ID), suite.adminToken, models.ResolveApprovalRequest{Comments: "ok"})
	suite.Equal(http.StatusOK, w.Code)

	// Backdate the review due date past now
	suite.db.Model(&models.SOP{}).Where("id = ?", sop.ID).
		Update("review_due_date", time.Now().AddDate(0, 0, -1))

	// Reading the list sweeps overdue active SOPs back into review
	w = suite.do("GET", "/api/v1/sops", suite.userToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	var detail models.SOPDetail
	w = suite.do("GET", fmt.Sprintf("/api/v1/sops/%d", sop.ID), suite.userToken, nil)
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &detail))
	suite.Equal(models.StatusReview, detail.Status)
}

func (suite *IntegrationTestSuite) TestCreateVersionWithoutBody() {
	sop := suite.createSOP(suite.userToken)

	// change_summary is optional; a bare POST snapshots with the default summary
	w := suite.do("POST", fmt.Sprintf("/api/v1/sops/%d/versions", sop.ID), suite.userToken, nil)
	suite.Equal(http.StatusCreated, w.Code)

	var version models.SOPVersion
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &version))
	suite.Equal(1, version.VersionNumber)
	suite.Equal("Version 1", version.ChangeSummary)
}

func (suite *IntegrationTestSuite) TestPendingQueueFailsOnCorruptSnapshot() {
	sop := suite.createSOP(suite.userToken)

	w := suite.do("POST", fmt.Sprintf("/api/v1/sops/%d/versions", sop.ID), suite.userToken, models.CreateVersionRequest{ChangeSummary: "baseline"})
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.do("POST", fmt.Sprintf("/api/v1/sops/%d/submit-for-approval", sop.ID), suite.userToken, nil)
	suite.Equal(http.StatusCreated, w.Code)

	suite.db.Exec("UPDATE sop_versions SET snapshot = 'not json' WHERE sop_id = ? AND version_number = 2", sop.ID)

	// An undiffable snapshot must surface as an error, not an empty change list
	w = suite.do("GET", "/api/v1/approvals", suite.adminToken, nil)
	suite.Equal(http.StatusInternalServerError, w.Code)
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
