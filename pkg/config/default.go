package config

// Default returns the shipped configuration: the full set of CORDEX
// ARC44 model pairs, scenarios, base variables, the variable-to-index
// mapping, and the point locations summarized from the combined
// dataset.
func Default() *Config {
	return &Config{
		Models: []string{
			"CCCma-CanESM2_CCCma-CanRCM4",
			"CCCma-CanESM2_SMHI-RCA4",
			"CCCma-CanESM2_UQAM-CRCM5",
			"ICHEC-EC-EARTH_DMI-HIRHAM5",
			"ICHEC-EC-EARTH_SMHI-RCA4",
			"ICHEC-EC-EARTH_SMHI-RCA4-SN",
			"MPI-M-MPI-ESM-LR_MGO-RRCM",
			"MPI-M-MPI-ESM-LR_SMHI-RCA4",
			"MPI-M-MPI-ESM-LR_SMHI-RCA4-SN",
			"MPI-M-MPI-ESM-MR_UQAM-CRCM5",
			"NCC-NorESM1-M_SMHI-RCA4",
		},
		Scenarios:        []string{"hist", "rcp45", "rcp85"},
		BaselineScenario: "hist",
		Variables:        []string{"pr", "prsn", "sfcWind", "tasmax", "tasmin"},
		Indices: map[string][]string{
			"pr":      {"rx1day", "rx5day", "r10mm", "cwd", "cdd"},
			"prsn":    {"hsd"},
			"tasmax":  {"hd", "su", "wsdi"},
			"tasmin":  {"cd", "dw", "csdi"},
			"sfcWind": {"wndd"},
		},
		Workers:  4,
		Database: "annual_indices.db",
		Locations: map[string]Location{
			"Kaktovik":          {Lat: 70.1, Lon: -143.6},
			"Stevens Village":   {Lat: 66.1, Lon: -149.1},
			"Igiugik Village":   {Lat: 59.3, Lon: -155.9},
			"Levelock":          {Lat: 59.1, Lon: -156.9},
			"Eyak":              {Lat: 60.5, Lon: -145.6},
			"Ketchikan":         {Lat: 55.6, Lon: -136.6},
			"Aleutians":         {Lat: 57.838, Lon: -159.995},
			"Nanwalek":          {Lat: 59.31, Lon: -157.91},
			"Port Graham":       {Lat: 59.34, Lon: -151.83},
			"Qutekcak (Seward)": {Lat: 60.10, Lon: -149.44},
			"Chenega Bay":       {Lat: 60.06, Lon: -148.01},
			"Tatitlek":          {Lat: 60.86, Lon: -146.68},
			"Valdez":            {Lat: 61.13, Lon: -146.35},
			"Cordova":           {Lat: 60.54, Lon: -145.76},
		},
	}
}
