// Package listview provides a scrolling list component for Bubble Tea views.
//
// Only the rows inside the viewport are rendered, so long activity ledgers
// stay responsive. Navigation follows the usual arrow, page and vim keys.
package listview
