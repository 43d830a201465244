package services

import (
	"ims-api/config"

	"gorm.io/gorm"
)

// GetUsersWithPermission resolves the emails of accounts holding the given
// permission key. Passing a transaction keeps the lookup inside it.
func GetUsersWithPermission(tx *gorm.DB, permissionKey string) ([]string, error) {
	if tx == nil {
		tx = config.DB
	}

	var emails []string
	err := tx.Table("user_permissions").
		Select("users.email").
		Joins("JOIN permissions ON permissions.permission_id = user_permissions.permission_id").
		Joins("JOIN users ON users.user_id = user_permissions.user_id").
		Where("permissions.permission_key = ?", permissionKey).
		Where("user_permissions.delete_at IS NULL AND users.delete_at IS NULL").
		Scan(&emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}
