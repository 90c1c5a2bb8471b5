// Package manifest loads the HCL manifests that declare which concrete series
// types an engine build exposes, and the optional runtime settings block.
//
// A manifest looks like:
//
//	series "polynomial" {
//	  description = "Multivariate polynomial."
//
//	  capabilities {
//	    interop = ["double", "integer"]
//	    pow     = ["integer"]
//	  }
//
//	  coefficient "double" {}
//	  coefficient "integer" {
//	    capabilities {
//	      pow = ["integer"]
//	    }
//	  }
//	}
//
//	settings {
//	  n_threads       = 4
//	  max_term_output = 50
//	}
//
// The series-level capabilities block is the default for every coefficient;
// a coefficient-level block replaces it entirely. Manifests are the public
// contract; the registry validates its Go registrations against them.
package manifest
