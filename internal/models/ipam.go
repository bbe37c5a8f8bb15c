package models

import "time"

// IPEntry: одна запись о назначении адреса устройству.
// Временные метки выставляет сервис, автоштампы gorm отключены.
type IPEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	IPAddress   string    `gorm:"column:ip_address;type:varchar(255);not null" json:"ip_address"`
	DeviceName  string    `gorm:"column:device_name;type:varchar(255)" json:"device_name"`
	MACAddress  string    `gorm:"column:mac_address;type:varchar(64)" json:"mac_address"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	AssignedTo  string    `gorm:"column:assigned_to;type:varchar(255)" json:"assigned_to"`
	CreatedAt   time.Time `gorm:"column:date_assigned;precision:6;autoCreateTime:false" json:"date_assigned"`
	UpdatedAt   time.Time `gorm:"column:last_updated;precision:6;autoUpdateTime:false" json:"last_updated"`
}

func (IPEntry) TableName() string { return "ip_entries" }
