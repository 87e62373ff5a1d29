package smarts

//Features is a table of named patterns for structural motifs that come up
//often when coarse-graining conjugated polymers.
var Features = map[string]string{
	"thiophene":         "c1sccc1",
	"thiophene_F":       "c1scc(F)c1",
	"alkyl_3":           "CCC",
	"benzene":           "c1ccccc1",
	"splitring1":        "csc",
	"splitring2":        "cc",
	"twobenzene":        "c2ccc1ccccc1c2",
	"ring_F":            "c1sc2c(scc2c1F)",
	"ring_3":            "c3sc4cc5ccsc5cc4c3",
	"chain1":            "OCC(CC)CCCC",
	"chain2":            "CCCCC(CC)COC(=O)",
	"cyclopentadiene":   "C1cccc1",
	"c4":                "cC(c)(c)c",
	"cyclopentadienone": "C=C1C(=C)ccC1=O",
}
