package controllers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/app/routes"
	"github.com/careerloft/careerloft/config"
	"github.com/careerloft/careerloft/pkg/auth"
	"github.com/careerloft/careerloft/pkg/database"
	"github.com/careerloft/careerloft/pkg/event"
	"github.com/careerloft/careerloft/pkg/router"
	"github.com/careerloft/careerloft/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// envelope mirrors the JSON response wrapper every endpoint uses.
type envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

// setupAPI wires a fresh in-memory database, a local storage root and the
// full route table behind a plain handler. No Redis: auth in these tests is
// bearer tokens only.
func setupAPI(t *testing.T) (*gorm.DB, http.Handler) {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Order{}, &models.Message{}, &models.Document{},
		&models.Lead{}, &models.AdminSettings{}, &models.WidgetLayout{},
		&models.JobApplication{},
	))

	database.DB = db
	config.Set("STORAGE_DISK", "local")
	config.Set("STORAGE_LOCAL_ROOT", t.TempDir())
	storage.Connect()
	t.Cleanup(func() {
		database.DB = nil
		event.Flush()
	})

	r := router.New()
	routes.Register(r)
	return db, r.Handler()
}

func seedUser(t *testing.T, db *gorm.DB, username string, role models.Role) models.User {
	t.Helper()

	hash, err := auth.HashPassword("secret-password")
	require.NoError(t, err)
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedPackages(t *testing.T, db *gorm.DB) {
	t.Helper()

	settings := models.AdminSettings{ChatWidgetEnabled: true}
	settings.SetPackageCatalog([]models.Package{
		{ID: "starter", Name: "Starter Resume", Price: 199},
	})
	settings.SetAddOnCatalog([]models.AddOn{
		{ID: "linkedin", Name: "LinkedIn Optimisation", Price: 125},
	})
	require.NoError(t, db.Create(&settings).Error)
}

func bearer(t *testing.T, user models.User) string {
	t.Helper()

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	require.NoError(t, err)
	return "Bearer " + token
}

// doJSON sends a JSON request and decodes the envelope.
func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec.Code, env
}

func TestSignupDuplicateUsername(t *testing.T) {
	_, h := setupAPI(t)

	payload := map[string]string{
		"username": "jordan",
		"email":    "jordan@example.com",
		"password": "longenoughpw",
	}
	code, _ := doJSON(t, h, http.MethodPost, "/api/auth/signup", "", payload)
	require.Equal(t, http.StatusCreated, code)

	payload["email"] = "other@example.com"
	code, env := doJSON(t, h, http.MethodPost, "/api/auth/signup", "", payload)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, http.StatusBadRequest, env.Status)
}

func TestLoginWrongPassword(t *testing.T) {
	db, h := setupAPI(t)
	seedUser(t, db, "jordan", models.RoleClient)

	code, _ := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "jordan", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestStopImpersonationWithoutImpersonator(t *testing.T) {
	db, h := setupAPI(t)
	admin := seedUser(t, db, "admin1", models.RoleAdmin)

	// No impersonation in the session, so there is no identity to restore.
	code, _ := doJSON(t, h, http.MethodPost, "/api/auth/stop-impersonation", bearer(t, admin), nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestCheckoutPriceComesFromCatalog(t *testing.T) {
	db, h := setupAPI(t)
	seedPackages(t, db)
	client := seedUser(t, db, "client1", models.RoleClient)

	code, env := doJSON(t, h, http.MethodPost, "/api/orders", bearer(t, client), map[string]interface{}{
		"package_type":   "starter",
		"add_on_ids":     []string{"linkedin"},
		"payment_method": "card",
		"card_number":    "4242 4242 4242 4242",
		"price":          1, // client-supplied price must be ignored
	})
	require.Equal(t, http.StatusCreated, code)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.EqualValues(t, 324, data["price"])
	assert.EqualValues(t, "pending", data["status"])
	assert.EqualValues(t, "paid", data["payment_status"])
	assert.EqualValues(t, 3, data["revisions_remaining"])
}

func TestCheckoutForbiddenForWriters(t *testing.T) {
	db, h := setupAPI(t)
	seedPackages(t, db)
	writer := seedUser(t, db, "writer1", models.RoleWriter)

	code, _ := doJSON(t, h, http.MethodPost, "/api/orders", bearer(t, writer), map[string]interface{}{
		"package_type":   "starter",
		"payment_method": "paypal",
	})
	assert.Equal(t, http.StatusForbidden, code)
}

func TestOrderHiddenFromOtherClients(t *testing.T) {
	db, h := setupAPI(t)
	seedPackages(t, db)
	owner := seedUser(t, db, "owner", models.RoleClient)
	other := seedUser(t, db, "other", models.RoleClient)

	code, env := doJSON(t, h, http.MethodPost, "/api/orders", bearer(t, owner), map[string]interface{}{
		"package_type":   "starter",
		"payment_method": "paypal",
	})
	require.Equal(t, http.StatusCreated, code)
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	orderID := int(data["id"].(float64))

	code, _ = doJSON(t, h, http.MethodGet, orderPath(orderID, ""), bearer(t, other), nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = doJSON(t, h, http.MethodGet, orderPath(orderID, ""), bearer(t, owner), nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestEscrowRoutesRequireAdmin(t *testing.T) {
	db, h := setupAPI(t)
	seedPackages(t, db)
	client := seedUser(t, db, "client1", models.RoleClient)
	admin := seedUser(t, db, "admin1", models.RoleAdmin)

	code, env := doJSON(t, h, http.MethodPost, "/api/orders", bearer(t, client), map[string]interface{}{
		"package_type":   "starter",
		"payment_method": "paypal",
	})
	require.Equal(t, http.StatusCreated, code)
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	orderID := int(data["id"].(float64))

	code, _ = doJSON(t, h, http.MethodPost, orderPath(orderID, "/hold"), bearer(t, client), nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = doJSON(t, h, http.MethodPost, orderPath(orderID, "/hold"), bearer(t, admin), nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.EqualValues(t, "held", data["payment_status"])

	// Refund after release is a dead end, so release must be terminal.
	code, _ = doJSON(t, h, http.MethodPost, orderPath(orderID, "/release"), bearer(t, admin), nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = doJSON(t, h, http.MethodPost, orderPath(orderID, "/refund"), bearer(t, admin), nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestDocumentDeleteOnlyUploaderOrAdmin(t *testing.T) {
	db, h := setupAPI(t)
	seedPackages(t, db)
	client := seedUser(t, db, "client1", models.RoleClient)
	writer := seedUser(t, db, "writer1", models.RoleWriter)

	code, env := doJSON(t, h, http.MethodPost, "/api/orders", bearer(t, client), map[string]interface{}{
		"package_type":   "starter",
		"payment_method": "paypal",
	})
	require.Equal(t, http.StatusCreated, code)
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	orderID := int(data["id"].(float64))

	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"writer_id": writer.ID,
			"status":    models.OrderInProgress,
		}).Error)

	code, env = uploadFile(t, h, orderPath(orderID, "/documents"), bearer(t, client), "resume.txt", "plain text resume")
	require.Equal(t, http.StatusCreated, code)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	docID := int(data["id"].(float64))

	req := httptest.NewRequest(http.MethodDelete, documentPath(docID), nil)
	req.Header.Set("Authorization", bearer(t, writer))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, documentPath(docID), nil)
	req.Header.Set("Authorization", bearer(t, client))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDocumentUploadRejectsUnknownExtension(t *testing.T) {
	db, h := setupAPI(t)
	seedPackages(t, db)
	client := seedUser(t, db, "client1", models.RoleClient)

	code, env := doJSON(t, h, http.MethodPost, "/api/orders", bearer(t, client), map[string]interface{}{
		"package_type":   "starter",
		"payment_method": "paypal",
	})
	require.Equal(t, http.StatusCreated, code)
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	orderID := int(data["id"].(float64))

	code, _ = uploadFile(t, h, orderPath(orderID, "/documents"), bearer(t, client), "payload.exe", "MZ")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestLeadChatIsPublic(t *testing.T) {
	_, h := setupAPI(t)

	code, env := doJSON(t, h, http.MethodPost, "/api/leads", "", map[string]string{
		"email": "prospect@example.com",
	})
	require.Equal(t, http.StatusCreated, code)
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	leadID := int(data["lead_id"].(float64))

	code, _ = doJSON(t, h, http.MethodPost, leadMessagesPath(leadID), "", map[string]string{
		"content": "Hi, do you help with federal resumes?",
	})
	require.Equal(t, http.StatusCreated, code)

	code, env = doJSON(t, h, http.MethodGet, leadMessagesPath(leadID), "", nil)
	require.Equal(t, http.StatusOK, code)

	var msgs []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &msgs))
	require.Len(t, msgs, 1)
	assert.EqualValues(t, 0, msgs[0]["sender_id"])
}

func TestAdminBackOfficeGate(t *testing.T) {
	db, h := setupAPI(t)
	client := seedUser(t, db, "client1", models.RoleClient)
	admin := seedUser(t, db, "admin1", models.RoleAdmin)

	code, _ := doJSON(t, h, http.MethodGet, "/api/admin/users", bearer(t, client), nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = doJSON(t, h, http.MethodGet, "/api/admin/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = doJSON(t, h, http.MethodGet, "/api/admin/users", bearer(t, admin), nil)
	assert.Equal(t, http.StatusOK, code)
}

// uploadFile posts a single-field multipart body.
func uploadFile(t *testing.T, h http.Handler, path, token, name, content string) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec.Code, env
}

func orderPath(id int, suffix string) string {
	return "/api/orders/" + itoa(id) + suffix
}

func documentPath(id int) string {
	return "/api/documents/" + itoa(id)
}

func leadMessagesPath(id int) string {
	return "/api/leads/" + itoa(id) + "/messages"
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
