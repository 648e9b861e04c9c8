package weather

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
)

// Thin passthrough to the external forecast provider. No caching, no local
// persistence: the provider's JSON body is streamed to the client as-is.

var httpClient = &http.Client{Timeout: 8 * time.Second}

func providerBaseURL() string {
	if base := os.Getenv("WEATHER_API_URL"); base != "" {
		return base
	}
	return "https://api.openweathermap.org/data/2.5"
}

// GET /api/weather/current?city=... or ?lat=..&lon=..
func GetCurrentWeather(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	proxy(w, r, "/weather")
}

// GET /api/weather/forecast?city=... or ?lat=..&lon=..
func GetForecast(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	proxy(w, r, "/forecast")
}

func proxy(w http.ResponseWriter, r *http.Request, path string) {
	apiKey := os.Getenv("WEATHER_API_KEY")
	if apiKey == "" {
		utils.RespondWithError(w, http.StatusBadGateway, "Weather provider is not configured")
		return
	}

	query := url.Values{}
	if city := r.URL.Query().Get("city"); city != "" {
		query.Set("q", city)
	} else {
		_, okLat := utils.ParseFloatQuery(r, "lat")
		_, okLon := utils.ParseFloatQuery(r, "lon")
		if !okLat || !okLon {
			utils.RespondWithError(w, http.StatusBadRequest, "city or lat/lon required")
			return
		}
		query.Set("lat", r.URL.Query().Get("lat"))
		query.Set("lon", r.URL.Query().Get("lon"))
	}
	query.Set("appid", apiKey)
	query.Set("units", "metric")

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, providerBaseURL()+path+"?"+query.Encode(), nil)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build provider request")
		return
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "Weather provider unavailable")
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	io.Copy(w, resp.Body)
}
