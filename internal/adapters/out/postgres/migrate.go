package postgres

import (
	"foodshare/internal/adapters/out/postgres/deliveryrepo"
	"foodshare/internal/adapters/out/postgres/donationrepo"
	"foodshare/internal/adapters/out/postgres/requestrepo"
	"foodshare/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Tables lists every table the repositories use, in truncation-safe order.
var Tables = []string{"deliveries", "requests", "donations", "users"}

// Migrate creates or alters the tables for all persisted aggregates.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userrepo.UserDTO{},
		&donationrepo.DonationDTO{},
		&requestrepo.RequestDTO{},
		&deliveryrepo.DeliveryDTO{},
	)
}
