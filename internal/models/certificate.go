package models

import "time"

const (
	ChainUnanchored = "unanchored"
	ChainPending    = "pending"
	ChainConfirmed  = "confirmed"
	ChainFailed     = "failed"
)

// Certificate is a credential a college issues to one of its students. The
// keccak256 of its canonical document is anchored on chain by the college.
// Holder fields are copied at issue time so later profile edits do not
// change the document.
type Certificate struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	PublicID            string     `gorm:"size:36;uniqueIndex;not null" json:"public_id"`
	StudentID           uint       `gorm:"index;not null" json:"student_id"`
	Student             *Student   `json:"student,omitempty"`
	CollegeID           uint       `gorm:"index;not null" json:"college_id"`
	College             *College   `json:"college,omitempty"`
	HolderName          string     `gorm:"size:100" json:"holder_name"`
	HolderRoll          string     `gorm:"size:20" json:"holder_roll"`
	CertificateName     string     `gorm:"size:200;not null" json:"certificate_name"`
	IssuingOrganization string     `gorm:"size:200" json:"issuing_organization"`
	IssueDate           *time.Time `json:"issue_date,omitempty"`
	ExpiryDate          *time.Time `json:"expiry_date,omitempty"`
	CertificateURL      string     `gorm:"size:200" json:"certificate_url"`
	IPFSCID             string     `gorm:"column:ipfs_cid;size:100" json:"ipfs_cid"`
	BlockchainHash      string     `gorm:"size:200" json:"blockchain_hash"`
	TxHash              string     `gorm:"size:66" json:"tx_hash"`
	ChainStatus         string     `gorm:"size:20;default:unanchored" json:"chain_status"`
	Verified            bool       `gorm:"default:false" json:"verified"`
	CreatedAt           time.Time  `json:"created_at"`
}

// Transaction records an anchoring transaction submitted for a certificate.
type Transaction struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CertificateID uint      `gorm:"index;not null" json:"certificate_id"`
	TxHash        string    `gorm:"size:66;uniqueIndex;not null" json:"tx_hash"`
	FromAddress   string    `gorm:"size:42" json:"from_address"`
	BlockNumber   uint64    `json:"block_number"`
	Status        string    `gorm:"size:20" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Document is the canonical form of a certificate: what gets hashed,
// pinned and re-checked on verification.
type Document struct {
	PublicID            string `json:"public_id"`
	CollegeID           uint   `json:"college_id"`
	HolderName          string `json:"holder_name"`
	HolderRoll          string `json:"holder_roll"`
	CertificateName     string `json:"certificate_name"`
	IssuingOrganization string `json:"issuing_organization"`
	IssueDate           string `json:"issue_date,omitempty"`
	ExpiryDate          string `json:"expiry_date,omitempty"`
}

func (c *Certificate) Document() Document {
	d := Document{
		PublicID:            c.PublicID,
		CollegeID:           c.CollegeID,
		HolderName:          c.HolderName,
		HolderRoll:          c.HolderRoll,
		CertificateName:     c.CertificateName,
		IssuingOrganization: c.IssuingOrganization,
	}
	if c.IssueDate != nil {
		d.IssueDate = c.IssueDate.UTC().Format("2006-01-02")
	}
	if c.ExpiryDate != nil {
		d.ExpiryDate = c.ExpiryDate.UTC().Format("2006-01-02")
	}
	return d
}

// Expired reports whether the certificate had expired at t.
func (c *Certificate) Expired(t time.Time) bool {
	return c.ExpiryDate != nil && t.After(*c.ExpiryDate)
}
