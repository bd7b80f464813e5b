// Package model defines database models for persistence layer.
package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sales-report/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
// The search, month and offset columns are derived at load time so the
// predicates translate to portable SQL. SQL LOWER only folds ASCII on SQLite,
// so search columns are lowercased here with the same folding the domain uses.
type TransactionModel struct {
	ID                int64           `gorm:"primaryKey;autoIncrement:false"`
	Title             string          `gorm:"type:varchar(255);not null"`
	TitleSearch       string          `gorm:"type:text;not null;default:''"`
	Description       string          `gorm:"type:text;not null"`
	DescriptionSearch string          `gorm:"type:text;not null;default:''"`
	Price             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PriceText         string          `gorm:"type:varchar(32);not null"`
	Category          string          `gorm:"type:varchar(100);not null;index"`
	Image             string          `gorm:"type:text"`
	DateOfSale        time.Time       `gorm:"not null"`
	SaleOffset        int             `gorm:"not null;default:0"` // Seconds east of UTC the sale was recorded in
	SaleMonth         int             `gorm:"not null;index"`
	Sold              bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		Category:    m.Category,
		Image:       m.Image,
		DateOfSale:  m.DateOfSale.In(time.FixedZone("", m.SaleOffset)),
		Sold:        m.Sold,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	_, offset := transaction.DateOfSale.Zone()
	return &TransactionModel{
		ID:                transaction.ID,
		Title:             transaction.Title,
		TitleSearch:       strings.ToLower(transaction.Title),
		Description:       transaction.Description,
		DescriptionSearch: strings.ToLower(transaction.Description),
		Price:             transaction.Price,
		PriceText:         transaction.PriceText(),
		Category:          transaction.Category,
		Image:             transaction.Image,
		DateOfSale:        transaction.DateOfSale,
		SaleOffset:        offset,
		SaleMonth:         int(transaction.SaleMonth()),
		Sold:              transaction.Sold,
	}
}
