package domain

import "time"

// Property 房产领域模型（租约元数据来自向导步骤）
// 由账号拥有；本引擎只读，不创建不删除
type Property struct {
	PropertyID string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	Address    string    `json:"address"`
	UnitNumber string    `json:"unit_number"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	Zip        string    `json:"zip"`
	Deposit    int64     `json:"deposit_amount"` // 美分
	LeaseStart time.Time `json:"lease_start"`
	LeaseEnd   time.Time `json:"lease_end"`
	LeaseMonths int      `json:"contract_duration"`
}
