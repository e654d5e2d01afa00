package constants

// Значения формы по умолчанию
const (
	DefaultProductName = "2026 SS 시그니처 볼캡"

	DefaultProduceQty     = 100
	DefaultSewingCost     = 6000
	DefaultEmbroideryCost = 1500
	DefaultFinishCost     = 500
	DefaultLogisticsCost  = 300
	DefaultFixedCostTotal = 300000
	DefaultTargetPrice    = 49000
	DefaultChannel        = ChannelOwnMall
	DefaultVATIncluded    = true
)

// DefaultMaterial is one seed row of the bill of materials.
type DefaultMaterial struct {
	Name        string
	UnitPrice   float64
	UsageFactor float64
}

// Базовый набор материалов для бейсболки
var DefaultMaterials = []DefaultMaterial{
	{Name: "겉감 (Main Fabric)", UnitPrice: 4500, UsageFactor: 0.3},
	{Name: "챙심 (Brim)", UnitPrice: 500, UsageFactor: 1.0},
	{Name: "땀받이 (Sweatband)", UnitPrice: 800, UsageFactor: 1.0},
	{Name: "탑버튼 & 아일렛", UnitPrice: 150, UsageFactor: 1.0},
	{Name: "메인 라벨", UnitPrice: 120, UsageFactor: 1.0},
	{Name: "케어 라벨", UnitPrice: 80, UsageFactor: 1.0},
	{Name: "폴리백 & 박스", UnitPrice: 500, UsageFactor: 1.0},
}
