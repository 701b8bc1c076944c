package dto

// ── 排班看板 DTO ──

// BoardQuery 看板窗口查询参数
type BoardQuery struct {
	From      string `form:"from"       binding:"required,datetime=2006-01-02"`
	To        string `form:"to"         binding:"required,datetime=2006-01-02"`
	ShiftView string `form:"shift_view" binding:"omitempty,oneof=day night both"`
}

// BoardResponse 看板聚合响应：一次加载渲染网格所需的全部数据
type BoardResponse struct {
	Resources      []ResourceResponse      `json:"resources"`
	FilterOptions  FilterOptionsResponse   `json:"filter_options"`
	WorkItems      []WorkItemResponse      `json:"work_items"`
	Allocations    []AllocationResponse    `json:"allocations"`
	Notes          []NoteResponse          `json:"notes"`
	DayEvents      []DayEventResponse      `json:"day_events"`
	DayBackgrounds map[string]string       `json:"day_backgrounds,omitempty"` // date → 背景色提示
	Weather        map[string]WeatherDay   `json:"weather,omitempty"`         // date → 预报（纯装饰）
	ReadOnly       bool                    `json:"read_only"`
}

// WeatherDay 单日天气预报（装饰层）
type WeatherDay struct {
	Date        string  `json:"date"`
	TempMaxC    float64 `json:"temp_max_c"`
	TempMinC    float64 `json:"temp_min_c"`
	PrecipMM    float64 `json:"precip_mm"`
	WeatherCode int     `json:"weather_code"`
}
