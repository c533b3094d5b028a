package quote

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartBody = `{"chart":{"result":[{"meta":{"regularMarketPrice":1918.3},
"timestamp":[1714003200,1714089600],
"indicators":{"quote":[{"close":[1910.2,1918.3]}]}}],"error":null}}`

func TestYahooPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/GC=F", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		fmt.Fprint(w, chartBody)
	}))
	defer srv.Close()

	p := NewYahooProvider(srv.URL, 5*time.Second)
	price, err := p.Price(context.Background(), "GC=F")
	require.NoError(t, err)
	assert.Equal(t, 1918.3, price)
}

func TestYahooPriceSkipsNullCloses(t *testing.T) {
	body := `{"chart":{"result":[{"meta":{},
"timestamp":[1714003200,1714089600],
"indicators":{"quote":[{"close":[1910.2,null]}]}}],"error":null}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	p := NewYahooProvider(srv.URL, 5*time.Second)
	price, err := p.Price(context.Background(), "GC=F")
	require.NoError(t, err)
	assert.Equal(t, 1910.2, price)
}

func TestYahooPriceAPIError(t *testing.T) {
	body := `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	p := NewYahooProvider(srv.URL, 5*time.Second)
	_, err := p.Price(context.Background(), "UNKNOWN")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}

func TestYahooPriceHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewYahooProvider(srv.URL, 5*time.Second)
	_, err := p.Price(context.Background(), "GC=F")
	require.Error(t, err)
}

func TestYahooPriceUnavailable(t *testing.T) {
	body := `{"chart":{"result":[{"meta":{},"timestamp":[],"indicators":{"quote":[{"close":[]}]}}],"error":null}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	p := NewYahooProvider(srv.URL, 5*time.Second)
	_, err := p.Price(context.Background(), "GC=F")
	require.Error(t, err)
}
