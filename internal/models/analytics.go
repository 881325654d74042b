package models

import "time"

// Analytics is a point-in-time metric snapshot for an entity.
type Analytics struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	MetricName     string         `gorm:"size:100;not null;index" json:"metric_name"`
	MetricValue    float64        `json:"metric_value"`
	MetricDate     time.Time      `json:"metric_date"`
	EntityType     string         `gorm:"size:50" json:"entity_type"`
	EntityID       uint           `json:"entity_id"`
	AdditionalData map[string]any `gorm:"serializer:json" json:"additional_data"`
}

type NEPAssessment struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CollegeID       uint           `gorm:"index;not null" json:"college_id"`
	OverallScore    float64        `json:"overall_score"`
	ComplianceLevel string         `gorm:"size:20" json:"compliance_level"`
	Result          map[string]any `gorm:"serializer:json" json:"result"`
	Submitted       map[string]any `gorm:"serializer:json" json:"submitted"`
	CreatedAt       time.Time      `json:"created_at"`
}
