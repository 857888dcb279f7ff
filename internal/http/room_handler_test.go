package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tenantli-inspect/internal/assembler"
	"tenantli-inspect/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRoomSaver struct {
	createErr  error
	updateErr  error
	lastCreate struct {
		propertyID string
		name       string
		roomType   domain.RoomType
		editingID  string
	}
	lastUpdate domain.Room
}

func (f *fakeRoomSaver) CreateRoom(_ context.Context, propertyID, name string, roomType domain.RoomType, editingID string) (domain.Room, error) {
	f.lastCreate.propertyID = propertyID
	f.lastCreate.name = name
	f.lastCreate.roomType = roomType
	f.lastCreate.editingID = editingID
	if f.createErr != nil {
		return domain.Room{}, f.createErr
	}
	return domain.Room{RoomID: "room-1", Name: name, Type: roomType}, nil
}

func (f *fakeRoomSaver) UpdateRoom(_ context.Context, propertyID string, room domain.Room) (domain.Room, error) {
	f.lastUpdate = room
	if f.updateErr != nil {
		return domain.Room{}, f.updateErr
	}
	return room, nil
}

func newRoomRouter(saver RoomSaver) *Router {
	router := NewRouter(zap.NewNop())
	router.RegisterRoomRoutes(NewRoomHandler(saver, zap.NewNop()), nil)
	return router
}

func postRoom(router *Router, propertyID, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/properties/"+propertyID+"/rooms", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	return rec
}

func TestSaveRoomCreate(t *testing.T) {
	saver := &fakeRoomSaver{}
	router := newRoomRouter(saver)

	rec := postRoom(router, "p1", `{"name":"Bedroom 1","type":"bedroom"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var res Result[domain.Room]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, ResultSuccess, res.Code)
	assert.Equal(t, "room-1", res.Result.RoomID)
	assert.Equal(t, "p1", saver.lastCreate.propertyID)
	assert.Equal(t, "Bedroom 1", saver.lastCreate.name)
	assert.Equal(t, domain.RoomTypeBedroom, saver.lastCreate.roomType)
}

func TestSaveRoomUpdate(t *testing.T) {
	saver := &fakeRoomSaver{}
	router := newRoomRouter(saver)

	rec := postRoom(router, "p1", `{"room_id":"room-7","name":"Kitchen","type":"kitchen","quality":"attention","issue_notes":["stove scratched"]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "room-7", saver.lastUpdate.RoomID)
	assert.Equal(t, domain.QualityAttention, saver.lastUpdate.Quality)
	assert.Equal(t, []string{"stove scratched"}, saver.lastUpdate.IssueNotes)
}

func TestSaveRoomValidation(t *testing.T) {
	router := newRoomRouter(&fakeRoomSaver{})

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"type":"bedroom"}`},
		{"bad type", `{"name":"Garage","type":"garage"}`},
		{"bad quality", `{"name":"Kitchen","type":"kitchen","quality":"terrible"}`},
		{"too many notes", `{"name":"Kitchen","type":"kitchen","issue_notes":[` + strings.Repeat(`"x",`, 15) + `"x"]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postRoom(router, "p1", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var res Result[any]
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
			assert.Equal(t, ResultError, res.Code)
		})
	}
}

func TestSaveRoomDuplicateName(t *testing.T) {
	router := newRoomRouter(&fakeRoomSaver{createErr: assembler.ErrDuplicateRoomName})

	rec := postRoom(router, "p1", `{"name":"bedroom 1","type":"bedroom"}`)

	require.Equal(t, http.StatusConflict, rec.Code)

	var res Result[any]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, ResultError, res.Code)
	assert.Contains(t, res.Message, "already exists")
}

func TestSaveRoomBackendFailure(t *testing.T) {
	router := newRoomRouter(&fakeRoomSaver{createErr: assert.AnError})

	rec := postRoom(router, "p1", `{"name":"Bedroom 1","type":"bedroom"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestSaveRoomRouteShape(t *testing.T) {
	router := newRoomRouter(&fakeRoomSaver{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/properties/p1/rooms", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/properties/p1/photos", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
