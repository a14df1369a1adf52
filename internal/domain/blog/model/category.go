package model

// Category 分类，slug 作主键的静态参照数据
type Category struct {
	Slug  string `gorm:"primaryKey;size:100" json:"slug"`
	Title string `gorm:"unique;size:100" json:"title"`
}

func (Category) TableName() string {
	return "categories"
}
