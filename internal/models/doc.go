// Package models defines the core domain models for wattbill.
//
// # Models
//
//   - BillRecord: a persisted bill for one customer reading
//   - Draft: the editable, unvalidated form of a BillRecord held by the front end
//
// BillRecord.TotalBill is always derived from Units by the calculator package.
package models
