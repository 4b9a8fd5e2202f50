// Package autocomplete serves entity suggestions for autocomplete form
// elements.
//
// The handler answers GET requests with a JSON array of {value, label}
// pairs. value is the text an autocomplete input submits ("Title (id)"), so
// a picked suggestion decodes back to the entity id on submit.
//
//	mux.Handle("/admin/autocomplete/node", autocomplete.NewHandler(store))
package autocomplete
