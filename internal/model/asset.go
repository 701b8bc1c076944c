package model

// 资产类别 class 取值
const (
	AssetClassPrimary    = "primary"
	AssetClassAccessory  = "accessory"
	AssetClassConsumable = "consumable"
)

// AssetCategory 资产类别表 — 对应 asset_categories
// 仅 class=primary 的类别可进入排班看板，配件与耗材不可排
type AssetCategory struct {
	CategoryID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"category_id"`
	TeamID     string `gorm:"type:uuid;not null"                             json:"team_id"`
	Name       string `gorm:"type:varchar(100);not null"                     json:"name"`
	Class      string `gorm:"type:varchar(20);not null;default:'primary'"    json:"class"`
}

// TableName 指定表名
func (AssetCategory) TableName() string { return "asset_categories" }

// Asset 设备资产表 — 对应 assets
type Asset struct {
	AssetID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"asset_id"`
	TeamID       string  `gorm:"type:uuid;not null"                             json:"team_id"`
	SystemID     string  `gorm:"type:varchar(100);not null"                     json:"system_id"`
	Manufacturer string  `gorm:"type:varchar(100)"                              json:"manufacturer,omitempty"`
	Model        string  `gorm:"type:varchar(100)"                              json:"model,omitempty"`
	CategoryID   *string `gorm:"type:uuid"                                      json:"category_id,omitempty"`
	ColorTag     string  `gorm:"type:varchar(32)"                               json:"color_tag,omitempty"`
	SoftDeleteModel

	// 关联
	Category *AssetCategory `gorm:"foreignKey:CategoryID;references:CategoryID" json:"category,omitempty"`
}

// TableName 指定表名
func (Asset) TableName() string { return "assets" }

// DisplayName 设备显示名：厂商 + 型号，两者皆空时回退到资产编号
func (a *Asset) DisplayName() string {
	switch {
	case a.Manufacturer != "" && a.Model != "":
		return a.Manufacturer + " " + a.Model
	case a.Manufacturer != "":
		return a.Manufacturer
	case a.Model != "":
		return a.Model
	default:
		return a.SystemID
	}
}
