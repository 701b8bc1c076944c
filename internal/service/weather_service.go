package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/benbrewster85/risk-assessment-app-sub000/config"
	"github.com/benbrewster85/risk-assessment-app-sub000/internal/dto"
	"github.com/benbrewster85/risk-assessment-app-sub000/internal/model"
)

var ErrWeatherUnavailable = errors.New("天气服务不可用")

// WeatherService 看板天气叠加层。纯装饰数据：取数失败只降级不报错，
// 由调用方决定是否忽略。
type WeatherService interface {
	// Forecast 返回团队驻地在窗口内的逐日预报（date → 预报）。
	// 团队未配置坐标或功能未启用时返回空表。
	Forecast(ctx context.Context, team *model.Team, from, to time.Time) (map[string]dto.WeatherDay, error)
}

type weatherService struct {
	cfg    *config.WeatherConfig
	client *http.Client
	cache  *gocache.Cache
	logger *zap.Logger
}

// NewWeatherService 创建 WeatherService 实例
func NewWeatherService(cfg *config.WeatherConfig, logger *zap.Logger) WeatherService {
	return &weatherService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.HTTPTimeout},
		cache:  gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		logger: logger,
	}
}

// forecastPayload 上游逐日预报响应（Open-Meteo daily 格式）
type forecastPayload struct {
	Daily struct {
		Time          []string  `json:"time"`
		TempMax       []float64 `json:"temperature_2m_max"`
		TempMin       []float64 `json:"temperature_2m_min"`
		Precipitation []float64 `json:"precipitation_sum"`
		WeatherCode   []int     `json:"weather_code"`
	} `json:"daily"`
}

func (s *weatherService) Forecast(ctx context.Context, team *model.Team, from, to time.Time) (map[string]dto.WeatherDay, error) {
	if !s.cfg.Enabled || team == nil || team.BaseLat == nil || team.BaseLon == nil {
		return map[string]dto.WeatherDay{}, nil
	}

	cacheKey := fmt.Sprintf("weather:%s:%s:%s", team.TeamID, formatDay(from), formatDay(to))
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(map[string]dto.WeatherDay), nil
	}

	payload, err := s.fetch(ctx, *team.BaseLat, *team.BaseLon, from, to)
	if err != nil {
		s.logger.Warn("天气预报获取失败",
			zap.String("team_id", team.TeamID),
			zap.Error(err),
		)
		return nil, ErrWeatherUnavailable
	}

	out := make(map[string]dto.WeatherDay, len(payload.Daily.Time))
	for i, date := range payload.Daily.Time {
		day := dto.WeatherDay{Date: date}
		if i < len(payload.Daily.TempMax) {
			day.TempMaxC = payload.Daily.TempMax[i]
		}
		if i < len(payload.Daily.TempMin) {
			day.TempMinC = payload.Daily.TempMin[i]
		}
		if i < len(payload.Daily.Precipitation) {
			day.PrecipMM = payload.Daily.Precipitation[i]
		}
		if i < len(payload.Daily.WeatherCode) {
			day.WeatherCode = payload.Daily.WeatherCode[i]
		}
		out[date] = day
	}

	s.cache.Set(cacheKey, out, gocache.DefaultExpiration)
	return out, nil
}

func (s *weatherService) fetch(ctx context.Context, lat, lon float64, from, to time.Time) (*forecastPayload, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lon))
	q.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,weather_code")
	q.Set("timezone", "UTC")
	q.Set("start_date", formatDay(from))
	q.Set("end_date", formatDay(to))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.APIBaseURL+"/v1/forecast?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("上游返回 %d", resp.StatusCode)
	}

	var payload forecastPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
