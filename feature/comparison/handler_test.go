package comparison

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"asset-lists/core/assetlist"
	"asset-lists/core/liststore"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	firstFile  = "first.assetlist"
	secondFile = "second.assetlist"
)

// seedStore writes first = {0,1,2} and second = {1,2',3} to a file store.
func seedStore(t *testing.T) (*liststore.FileStore, [4]assetlist.AssetID) {
	t.Helper()
	var ids [4]assetlist.AssetID
	for i := range ids {
		ids[i] = assetlist.NewAssetID(uuid.New(), 0)
	}
	rec := func(i int, content string) assetlist.AssetFileInfo {
		return assetlist.NewAssetFileInfo(ids[i], "asset"+string(rune('0'+i))+".txt", assetlist.HashBytes([]byte(content)))
	}

	store := liststore.NewFileStore(t.TempDir())
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, firstFile, assetlist.NewList(rec(0, "a"), rec(1, "b"), rec(2, "c"))))
	require.NoError(t, store.Save(ctx, secondFile, assetlist.NewList(rec(1, "b"), rec(2, "changed"), rec(3, "d"))))
	return store, ids
}

func setupTestApp(t *testing.T, store assetlist.Store) *fiber.App {
	app := fiber.New()
	svc := NewService(store, zap.NewNop(), 0)
	handler := NewHandler(svc)
	handler.RegisterRoutes(app)
	return app
}

func postDefinition(t *testing.T, app *fiber.App, target, contentType, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", target, strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHandleRun_Delta(t *testing.T) {
	store, ids := seedStore(t)
	app := setupTestApp(t, store)

	status, body := postDefinition(t, app, "/comparison?include=output", "application/json", `{
		"first": ["first.assetlist"], "second": ["second.assetlist"],
		"steps": [{"type": "delta", "output": "out/delta.assetlist"}]
	}`)

	require.Equal(t, 200, status)
	assert.EqualValues(t, 2, body["count"])
	assets := body["assets"].([]any)
	require.Len(t, assets, 2)
	assert.Equal(t, ids[2].String(), assets[0].(map[string]any)["asset_id"])

	saved, err := store.Load(context.Background(), "out/delta.assetlist")
	require.NoError(t, err)
	assert.Equal(t, 2, saved.Len())
}

func TestHandleRun_YAMLChain(t *testing.T) {
	store, _ := seedStore(t)
	app := setupTestApp(t, store)

	status, body := postDefinition(t, app, "/comparison", "application/x-yaml", `
first: [first.assetlist, $changed]
second: [second.assetlist]
steps:
  - {type: delta, output: $changed}
  - {type: filepattern, output: result.assetlist, pattern: "asset3.*"}
`)

	require.Equal(t, 200, status)
	assert.EqualValues(t, 1, body["count"])
	steps := body["steps"].([]any)
	require.Len(t, steps, 2)
	assert.Equal(t, false, steps[0].(map[string]any)["persisted"])
}

func TestHandleRun_FilePatternWithSecondList(t *testing.T) {
	store, _ := seedStore(t)
	app := setupTestApp(t, store)

	status, body := postDefinition(t, app, "/comparison", "application/json", `{
		"first": ["first.assetlist"], "second": ["second.assetlist"],
		"steps": [{"type": "filepattern", "output": "x.assetlist", "pattern": "*"}]
	}`)

	assert.Equal(t, 400, status)
	assert.Equal(t, "configuration error", body["kind"])
	assert.Equal(t, "planning", body["phase"])

	_, err := store.Load(context.Background(), "x.assetlist")
	assert.ErrorIs(t, err, assetlist.ErrListNotFound)
}

func TestHandleRun_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		kind   string
		step   float64
	}{
		{"Malformed JSON", `{"steps": [`, 400, "configuration error", 0},
		{"Unknown Type", `{"first":["first.assetlist"],"steps":[{"type":"merge","output":"x"}]}`, 400, "configuration error", 0},
		{"Bad Regex", `{"first":["first.assetlist"],"steps":[{"type":"filepattern","output":"x","pattern":"(","pattern_type":"regex"}]}`, 400, "pattern error", 1},
		{"Unbound Token", `{"first":["$nope"],"second":["second.assetlist"],"steps":[{"type":"union","output":"x"}]}`, 400, "token resolution error", 1},
		{"Missing Input", `{"first":["ghost.assetlist"],"second":["second.assetlist"],"steps":[{"type":"union","output":"x"}]}`, 404, "io error", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := seedStore(t)
			app := setupTestApp(t, store)

			status, body := postDefinition(t, app, "/comparison", "application/json", tt.body)

			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.kind, body["kind"])
			if tt.step > 0 {
				assert.Equal(t, tt.step, body["step"])
			} else {
				assert.NotContains(t, body, "step")
			}
		})
	}
}

func TestHandleRun_LocatorOutsideRoot(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "lists")
	store := liststore.NewFileStore(root)
	require.NoError(t, store.Save(context.Background(), "in.assetlist", assetlist.NewList()))
	app := setupTestApp(t, store)

	status, body := postDefinition(t, app, "/comparison", "application/json", `{
		"first": ["in.assetlist"],
		"steps": [{"type": "filepattern", "output": "../escaped.assetlist", "pattern": "*"}]
	}`)

	assert.Equal(t, 400, status)
	assert.Equal(t, "configuration error", body["kind"])
	assert.Equal(t, "planning", body["phase"])
	assert.NoFileExists(t, filepath.Join(base, "escaped.assetlist"))

	status, _ = postDefinition(t, app, "/comparison", "application/json", `{
		"first": ["/etc/hostname"],
		"steps": [{"type": "filepattern", "output": "out.assetlist", "pattern": "*"}]
	}`)
	assert.Equal(t, 400, status)

	resp, err := app.Test(httptest.NewRequest("GET", "/comparison/lists?locator=../escaped.assetlist", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

type failingSaveStore struct {
	assetlist.Store
	failOn string
}

func (s failingSaveStore) Save(ctx context.Context, locator string, list *assetlist.List) error {
	if locator == s.failOn {
		return errors.New("disk full")
	}
	return s.Store.Save(ctx, locator, list)
}

func TestHandleRun_SaveFailureReportsCompletedSteps(t *testing.T) {
	store, _ := seedStore(t)
	app := setupTestApp(t, failingSaveStore{Store: store, failOn: "second-step.assetlist"})

	status, body := postDefinition(t, app, "/comparison", "application/json", `{
		"first": ["first.assetlist"], "second": ["second.assetlist"],
		"steps": [
			{"type": "union", "output": "first-step.assetlist"},
			{"type": "filepattern", "output": "second-step.assetlist", "pattern": "*"}
		]
	}`)

	assert.Equal(t, 500, status)
	assert.Equal(t, "persisting", body["phase"])
	assert.EqualValues(t, 2, body["step"])
	assert.Len(t, body["completed"], 1)

	_, err := store.Load(context.Background(), "first-step.assetlist")
	assert.NoError(t, err)
}

func TestHandleLists(t *testing.T) {
	store, _ := seedStore(t)
	app := setupTestApp(t, store)

	t.Run("One List", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/comparison/lists?locator=first.assetlist", nil))
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.EqualValues(t, 3, body["count"])
	})

	t.Run("Not Found", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/comparison/lists?locator=ghost.assetlist", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("All Locators", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/comparison/lists", nil))
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		var body map[string][]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, []string{firstFile, secondFile}, body["lists"])
	})
}

type plainStore struct{ assetlist.Store }

func TestHandleLists_ListingUnsupported(t *testing.T) {
	store, _ := seedStore(t)
	app := setupTestApp(t, plainStore{store})

	resp, err := app.Test(httptest.NewRequest("GET", "/comparison/lists", nil))

	require.NoError(t, err)
	assert.Equal(t, 501, resp.StatusCode)
}
