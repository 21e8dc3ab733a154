// Package styles renders residues and base pairs as SVG elements.
//
// [Circles] draws every residue as a filled disc, with the nucleotide
// letter on top when a sequence is known. [Letters] draws only the letter,
// in the residue colour. Pseudoknotted pairs are dashed in both styles.
package styles
