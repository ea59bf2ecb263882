// Package models defines the core domain models for SplitSmart.
//
// # Current Models
//
// The following models are actively used:
//   - Member: A participant in a group, referenced by ID everywhere else
//   - Expense: A shared expense with a payer and a per-member split
//   - Group: A set of members who share expenses, with a running total
//   - ExtractedReceiptData: Best-guess fields pulled from receipt OCR text
//   - User: A registered account (authentication)
//
// # Future Models
//
// The following models are defined but not yet used in any computation:
//   - Payment: An incremental payment against an expense's split
//
// # Design Principles
//
//  1. **ID references**: Members are referenced by ID in splits and balances,
//     never duplicated by value.
//  2. **Derived values stay derived**: Balances are recomputed from the
//     expense set on demand and are never persisted authoritatively.
//  3. **Monotonic settlement**: Expense.Settled only ever transitions from
//     false to true.
//  4. **Avoid circular references**: Use ID strings instead of pointers for
//     relationships.
package models
