package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/trezcool/letscatchup/core"
	"github.com/trezcool/letscatchup/core/geocode"
	"github.com/trezcool/letscatchup/core/pin"
	"github.com/trezcool/letscatchup/core/school"
	"github.com/trezcool/letscatchup/services/filestore"
	dummydb "github.com/trezcool/letscatchup/storage/database/dummy"
)

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	headers  map[string]string
	wantCode int
}

type testLogger struct{}

func (testLogger) Enable(bool)                        {}
func (testLogger) Debug(string, ...interface{})       {}
func (testLogger) Info(string, ...interface{})        {}
func (testLogger) Warn(string, ...interface{})        {}
func (testLogger) Error(string, ...interface{})       {}
func (testLogger) Fatal(msg string, _ ...interface{}) { panic(msg) }

type fakeGeocoder struct {
	places []geocode.Place
	err    error
}

func (c fakeGeocoder) Search(_ context.Context, query string, limit int) ([]geocode.Place, error) {
	return c.places, c.err
}

func (c fakeGeocoder) Reverse(_ context.Context, pt core.Point) (geocode.Place, error) {
	if c.err != nil {
		return geocode.Place{}, c.err
	}
	if len(c.places) == 0 {
		return geocode.Place{}, nil
	}
	return c.places[0], nil
}

type testEnv struct {
	server    Server
	pinRepo   pin.Repository
	pinSvc    *pin.Service
	schoolSvc *school.Service
}

type mailRecorder struct {
	messages []*core.EmailMessage
}

func (m *mailRecorder) SendMessages(messages ...*core.EmailMessage) {
	m.messages = append(m.messages, messages...)
}

func setup(t *testing.T, opts ...func(*Options)) *testEnv {
	t.Helper()
	core.Conf.Debug = false
	core.Conf.TestMode = true
	core.Conf.Media.Root = t.TempDir()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	pinSvc := pin.NewService(dummydb.NewPinRepository(db))
	schoolSvc := school.NewService(
		dummydb.NewSchoolRepository(db),
		&mailRecorder{},
		[]string{"--- Delhi NCR ---", "Modern School", "Sardar Patel Vidyalaya"},
	)

	o := &Options{
		DisableReqLogs: true,
		PinSvc:         pinSvc,
		SchoolSvc:      schoolSvc,
		Geocoder:       fakeGeocoder{},
		Files:          filestore.NewDiskStorage(core.Conf),
		Logger:         testLogger{},
	}
	for _, opt := range opts {
		opt(o)
	}

	return &testEnv{
		server:    NewServer(o),
		pinRepo:   dummydb.NewPinRepository(db),
		pinSvc:    pinSvc,
		schoolSvc: schoolSvc,
	}
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func createPin(t *testing.T, svc *pin.Service, fullName, schoolName, city string, lat, lon float64) (pin.Pin, string) {
	t.Helper()
	np := pin.NewPin{
		FullName:   fullName,
		SchoolName: schoolName,
		City:       city,
		Latitude:   lat,
		Longitude:  lon,
		Role:       pin.RoleStudent,
	}
	p, secret, err := svc.Create(np)
	if err != nil {
		t.Fatalf("createPin() failed: %v", err)
	}
	// keep CreatedAt ordering deterministic for recency tests
	time.Sleep(time.Millisecond)
	return p, secret
}
