// Package seed loads development and demo data from a YAML file:
//
//	agencies:
//	  - name: Alpha Travel
//	    slug: alpha
//	    settings: {plan: pro}
//	    members:
//	      - email: ann@alpha.test
//	        first_name: Ann
//	        role: admin
//	  - name: Gamma Tours
//	    active: false
//
// Agencies are created through the directory; members go through the
// agency service, so they cross the same privileged boundary and
// validation as API traffic. Runs are idempotent.
package seed
