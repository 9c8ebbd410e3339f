// Package slug derives agency slugs from display names during onboarding.
//
// Slugs double as subdomain labels, so Make only ever emits lowercase ASCII
// letters, digits and single hyphens, capped at 63 characters. Accented
// letters are folded with golang.org/x/text normalisation rather than
// dropped:
//
//	slug.Make("Agence Étoile & Co")                        // "agence-etoile-co"
//	slug.Make("Agence Étoile & Co", slug.CustomReplace(map[string]string{"&": "and"}))
//	                                                       // "agence-etoile-and-co"
//	slug.Make("Acme", slug.WithSuffix(4))                  // "acme-k3f9"
package slug
