// Package region composes the blocks placed in a page region into markup.
//
// Placements render in weight order. A block whose plugin is missing or
// whose build fails is logged, counted and replaced by a placeholder so the
// rest of the region still renders. Blocks with empty output are skipped.
// Block markup is sanitised before it is composed into the page.
package region
