package entity

import "gorm.io/gorm"

// AutoMigrate 自动迁移所有ERP表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// 目录
		&Product{},
		&Collection{},
		&Material{},

		// 订单
		&Order{},
		&OrderItem{},

		// 生产
		&ProductionBatch{},

		// 定价
		&MetalPrice{},
	)
}
