// Package gst holds the jurisdiction table and tax-splitting rules for India GST.
package gst

import "strings"

// stateCodes maps state and union territory names to their 2-digit GST codes.
// Legacy names are kept so older addresses still resolve.
var stateCodes = map[string]string{
	"Jammu and Kashmir":                        "01",
	"Himachal Pradesh":                         "02",
	"Punjab":                                   "03",
	"Chandigarh":                               "04",
	"Uttarakhand":                              "05",
	"Uttaranchal":                              "05",
	"Haryana":                                  "06",
	"Delhi":                                    "07",
	"New Delhi":                                "07",
	"Rajasthan":                                "08",
	"Uttar Pradesh":                            "09",
	"Bihar":                                    "10",
	"Sikkim":                                   "11",
	"Arunachal Pradesh":                        "12",
	"Nagaland":                                 "13",
	"Manipur":                                  "14",
	"Mizoram":                                  "15",
	"Tripura":                                  "16",
	"Meghalaya":                                "17",
	"Assam":                                    "18",
	"West Bengal":                              "19",
	"Jharkhand":                                "20",
	"Odisha":                                   "21",
	"Orissa":                                   "21",
	"Chhattisgarh":                             "22",
	"Madhya Pradesh":                           "23",
	"Gujarat":                                  "24",
	"Daman and Diu":                            "26",
	"Dadra and Nagar Haveli":                   "26",
	"Dadra and Nagar Haveli and Daman and Diu": "26",
	"Maharashtra":                              "27",
	"Karnataka":                                "29",
	"Goa":                                      "30",
	"Lakshadweep":                              "31",
	"Kerala":                                   "32",
	"Tamil Nadu":                               "33",
	"Puducherry":                               "34",
	"Pondicherry":                              "34",
	"Andaman and Nicobar Islands":              "35",
	"Andaman and Nicobar":                      "35",
	"Telangana":                                "36",
	"Andhra Pradesh":                           "37",
	"Ladakh":                                   "38",
	"Other Territory":                          "97",
}

// lowerStateCodes is the case-insensitive index of stateCodes.
var lowerStateCodes = func() map[string]string {
	m := make(map[string]string, len(stateCodes))
	for name, code := range stateCodes {
		m[strings.ToLower(name)] = code
	}
	return m
}()

// ResolveStateCode returns the GST state code for a jurisdiction name.
// It tries an exact match first, then a case-insensitive one.
func ResolveStateCode(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	if code, ok := stateCodes[name]; ok {
		return code, true
	}
	code, ok := lowerStateCodes[strings.ToLower(name)]
	return code, ok
}

// StateCodeOrEmpty is ResolveStateCode without the found flag.
func StateCodeOrEmpty(name string) string {
	code, _ := ResolveStateCode(name)
	return code
}

// IsIntrastate is true only when both jurisdictions resolve to the same code.
// An unresolved jurisdiction on either side makes the supply interstate.
func IsIntrastate(sellerState, buyerState string) bool {
	seller, ok := ResolveStateCode(sellerState)
	if !ok {
		return false
	}
	buyer, ok := ResolveStateCode(buyerState)
	if !ok {
		return false
	}
	return seller == buyer
}
