// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/sales-report/backend/config"
	"github.com/sales-report/backend/internal/infra/dependency"
	"github.com/sales-report/backend/internal/integration/lock"
	"github.com/sales-report/backend/internal/integration/persistence"
	"github.com/sales-report/backend/internal/integration/persistence/model"
	"github.com/sales-report/backend/internal/integration/snapshot"
	"github.com/sales-report/backend/test/integration/mock"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	engine       *gin.Engine
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Dependencies
	db       *mock.Db
	redis    *mock.Redis
	snapshot *mock.ApiMock

	// Config
	cfg *config.Config
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		// Disables the seed rate limiter
		_ = os.Setenv("ENV", "test")
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.Database.Driver = config.StoreDriverSQLite
		cfg.Seed.OnStartup = false
		cfg.Seed.RefreshInterval = 0

		tc := &TestContext{
			requestHeaders: make(map[string]string),
			db:             mock.NewDb(&model.TransactionModel{}),
			redis:          mock.NewRedis(),
			snapshot:       mock.NewApiServer(),
			cfg:            cfg,
		}
		tc.snapshot.Start()

		store := persistence.NewTransactionRepository(tc.db.DbConn)
		ingestionLock := lock.NewRedisLock(tc.redis.Client, cfg.Seed.LockKey, cfg.Seed.LockTTL)
		source := snapshot.NewHTTPSource(tc.snapshot.GetUrl(), 5*time.Second)

		injector := dependency.NewInjector(cfg, store, ingestionLock, source, tc.db.HealthCheck)
		tc.engine = injector.Router.Setup(cfg.Server.Environment)
		tc.server = httptest.NewServer(tc.engine)

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc == nil {
			return ctx, nil
		}
		if tc.server != nil {
			tc.server.Close()
		}
		tc.snapshot.Close()
		tc.redis.Close()
		_ = tc.db.Close()
		return ctx, nil
	})

	registerDatasetSteps(ctx)
	registerAPISteps(ctx)
	registerResponseSteps(ctx)
}

// registerDatasetSteps registers snapshot and store setup steps.
func registerDatasetSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the snapshot source serves:$`, theSnapshotSourceServes)
	ctx.Step(`^the snapshot source answers with status (\d+)$`, theSnapshotSourceAnswersWithStatus)
	ctx.Step(`^the dataset has been seeded$`, theDatasetHasBeenSeeded)
	ctx.Step(`^another instance holds the ingestion lock$`, anotherInstanceHoldsTheIngestionLock)
	ctx.Step(`^the store should hold (\d+) transactions?$`, theStoreShouldHoldTransactions)
	ctx.Step(`^the snapshot source should have received (\d+) requests?$`, theSnapshotSourceShouldHaveReceivedRequests)
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, theResponseFieldShouldHaveItems)
	ctx.Step(`^the response should match json:$`, theResponseShouldMatchJSON)
}

// Dataset steps

func theSnapshotSourceServes(ctx context.Context, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.snapshot.SetResponse(http.StatusOK, body.Content)
	return nil
}

func theSnapshotSourceAnswersWithStatus(ctx context.Context, status int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.snapshot.SetResponse(status, `{"error":"unavailable"}`)
	return nil
}

func theDatasetHasBeenSeeded(ctx context.Context) (context.Context, error) {
	ctx, err := iSendARequestTo(ctx, http.MethodPost, "/api/v1/seed")
	if err != nil {
		return ctx, err
	}
	return ctx, theResponseStatusShouldBe(ctx, http.StatusOK)
}

func anotherInstanceHoldsTheIngestionLock(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.redis.Server.Set(tc.cfg.Seed.LockKey, "another-instance")
}

func theStoreShouldHoldTransactions(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var count int64
	if err := tc.db.DbConn.Model(&model.TransactionModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count transactions: %w", err)
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d transactions in the store, got %d", expected, count)
	}
	return nil
}

func theSnapshotSourceShouldHaveReceivedRequests(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if got := tc.snapshot.RequestCount(); got != expected {
		return fmt.Errorf("expected %d snapshot requests, got %d", expected, got)
	}
	return nil
}

// API steps

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	req, err := http.NewRequest(method, tc.server.URL+endpoint, bytes.NewReader(nil))
	if err != nil {
		return ctx, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}

	resp, err := tc.server.Client().Do(req)
	if err != nil {
		return ctx, fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return ctx, fmt.Errorf("failed to read response body: %w", err)
	}

	return SetTestContext(ctx, tc), nil
}

func iSetHeaderTo(ctx context.Context, header, value string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	tc.requestHeaders[header] = value
	return SetTestContext(ctx, tc), nil
}

// Response steps

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	value, err := responseField(ctx, field)
	if err != nil {
		return err
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	_, err := responseField(ctx, field)
	return err
}

func theResponseFieldShouldHaveItems(ctx context.Context, field string, expected int) error {
	value, err := responseField(ctx, field)
	if err != nil {
		return err
	}

	items, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("field '%s' is not an array", field)
	}
	if len(items) != expected {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, expected, len(items))
	}
	return nil
}

func theResponseShouldMatchJSON(ctx context.Context, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var expected, actual interface{}

	if err := json.Unmarshal([]byte(body.Content), &expected); err != nil {
		return fmt.Errorf("failed to parse expected JSON: %w", err)
	}

	if err := json.Unmarshal(tc.responseBody, &actual); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}

	expectedJSON, _ := json.Marshal(expected)
	actualJSON, _ := json.Marshal(actual)

	if string(expectedJSON) != string(actualJSON) {
		return fmt.Errorf("expected JSON:\n%s\nactual JSON:\n%s", string(expectedJSON), string(actualJSON))
	}

	return nil
}

// responseField resolves a dotted path such as "statistics.soldCount" or
// "histogram.0.count" against the JSON response body. "." is the body itself.
func responseField(ctx context.Context, path string) (interface{}, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return nil, fmt.Errorf("test context not found")
	}

	var current interface{}
	if err := json.Unmarshal(tc.responseBody, &current); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	if path == "." {
		return current, nil
	}

	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]interface{}:
			value, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field '%s' not found in response", path)
			}
			current = value
		case []interface{}:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("field '%s' not found in response", path)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("field '%s' not found in response", path)
		}
	}

	return current, nil
}
