package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AintAsh/Churn-Prediction/internal/adapter/client"
	"github.com/AintAsh/Churn-Prediction/internal/infrastructure/config"
	"github.com/AintAsh/Churn-Prediction/internal/usecase"
)

func newTestRouter(t *testing.T, modelURL string, seedUsers []string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Auth: config.AuthConfig{
			Secret:          "e2e-secret",
			TokenTTLMinutes: 30,
			SeedUsers:       seedUsers,
		},
	}
	modelClient := client.NewModelClient(modelURL, 2*time.Second)
	return Setup(cfg, nil, nil, modelClient, zap.NewNop())
}

func newModelServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/predict", r.URL.Path)
		prob := 0.42
		_ = json.NewEncoder(w).Encode(client.PredictResponse{
			Success:     true,
			Prediction:  0,
			Probability: &prob,
		})
	}))
}

func customerBody() map[string]interface{} {
	return map[string]interface{}{
		"Gender":              "Male",
		"Age":                 45,
		"Tenure":              12,
		"Services_Subscribed": 3,
		"Contract_Type":       "Month-to-Month",
		"MonthlyCharges":      89.99,
		"TotalCharges":        1000.0,
		"TechSupport":         "Yes",
		"OnlineSecurity":      "Yes",
		"InternetService":     "Fiber optic",
	}
}

func TestEndToEnd_RegisterThenAuthenticatedPredict(t *testing.T) {
	modelServer := newModelServer(t)
	defer modelServer.Close()

	router := newTestRouter(t, modelServer.URL, nil)

	// Register alice and capture the issued token
	regBody, _ := json.Marshal(map[string]string{"username": "alice", "password": "pw1"})
	req, _ := http.NewRequest("POST", "/register", bytes.NewReader(regBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var token usecase.TokenOutput
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
	require.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, 1800, token.ExpiresIn)

	// Predict with the token
	predBody, _ := json.Marshal(map[string]interface{}{"customer": customerBody()})
	req, _ = http.NewRequest("POST", "/predict/auth", bytes.NewReader(predBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var output usecase.PredictionOutput
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &output))
	assert.Contains(t, []string{"Churn", "No Churn"}, output.Label)
	if output.Probability != nil {
		assert.GreaterOrEqual(t, *output.Probability, 0.0)
		assert.LessOrEqual(t, *output.Probability, 1.0)
	}
}

func TestEndToEnd_LoginFlow(t *testing.T) {
	modelServer := newModelServer(t)
	defer modelServer.Close()

	router := newTestRouter(t, modelServer.URL, []string{"admin:admin-pass"})

	// Seeded account can log in
	loginBody, _ := json.Marshal(map[string]string{"username": "admin", "password": "admin-pass"})
	req, _ := http.NewRequest("POST", "/login", bytes.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// Registering the seeded name again is rejected
	req, _ = http.NewRequest("POST", "/register", bytes.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username already registered")
}

func TestEndToEnd_UnauthenticatedPredict(t *testing.T) {
	modelServer := newModelServer(t)
	defer modelServer.Close()

	router := newTestRouter(t, modelServer.URL, nil)

	body, _ := json.Marshal(customerBody())
	req, _ := http.NewRequest("POST", "/predict_churn", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"label"`)
}

func TestEndToEnd_ProtectedRouteWithoutToken(t *testing.T) {
	modelServer := newModelServer(t)
	defer modelServer.Close()

	router := newTestRouter(t, modelServer.URL, nil)

	body, _ := json.Marshal(map[string]interface{}{"customer": customerBody()})
	req, _ := http.NewRequest("POST", "/predict/auth", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEndToEnd_BannerAndMetrics(t *testing.T) {
	modelServer := newModelServer(t)
	defer modelServer.Close()

	router := newTestRouter(t, modelServer.URL, nil)

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Churn Prediction API")

	req, _ = http.NewRequest("GET", "/metrics", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
