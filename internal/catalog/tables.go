package catalog

// ModelInfo is a compiled-in catalog entry.
//
// A zero Year means the release year is unknown, a zero MSRP means the price is unknown.
type ModelInfo struct {
	Name string `json:"name"`
	Year int    `json:"year"`
	MSRP int    `json:"msrp,omitempty"`
}

// HasMSRP returns true when the catalog entry carries a retail price.
func (m ModelInfo) HasMSRP() bool { return m.MSRP > 0 }

// appleModels maps Mac model identifiers, MSRP in USD for the base configuration.
var appleModels = map[string]ModelInfo{
	// MacBook Air
	"Mac16,13":       {Name: `MacBook Air 15" (M4, 2025)`, Year: 2025, MSRP: 1299},
	"Mac16,12":       {Name: `MacBook Air 13" (M4, 2025)`, Year: 2025, MSRP: 1099},
	"Mac15,13":       {Name: `MacBook Air 15" (M3, 2024)`, Year: 2024, MSRP: 1299},
	"Mac15,12":       {Name: `MacBook Air 13" (M3, 2024)`, Year: 2024, MSRP: 1099},
	"Mac14,15":       {Name: `MacBook Air 15" (M2, 2023)`, Year: 2023, MSRP: 1299},
	"Mac14,2":        {Name: `MacBook Air 13" (M2, 2022)`, Year: 2022, MSRP: 1199},
	"MacBookAir10,1": {Name: `MacBook Air 13" (M1, 2020)`, Year: 2020, MSRP: 999},
	"MacBookAir9,1":  {Name: `MacBook Air 13" (Intel, 2020)`, Year: 2020, MSRP: 999},

	// MacBook Pro, Apple silicon
	"Mac16,1":        {Name: `MacBook Pro 14" (M4, 2024)`, Year: 2024, MSRP: 1599},
	"Mac16,6":        {Name: `MacBook Pro 14" (M4 Pro, 2024)`, Year: 2024, MSRP: 1999},
	"Mac16,8":        {Name: `MacBook Pro 14" (M4 Max, 2024)`, Year: 2024, MSRP: 3199},
	"Mac16,5":        {Name: `MacBook Pro 16" (M4 Pro, 2024)`, Year: 2024, MSRP: 2499},
	"Mac16,7":        {Name: `MacBook Pro 16" (M4 Max, 2024)`, Year: 2024, MSRP: 3499},
	"Mac15,3":        {Name: `MacBook Pro 14" (M3, 2023)`, Year: 2023, MSRP: 1599},
	"Mac15,6":        {Name: `MacBook Pro 14" (M3 Pro, 2023)`, Year: 2023, MSRP: 1999},
	"Mac15,8":        {Name: `MacBook Pro 14" (M3 Max, 2023)`, Year: 2023, MSRP: 2999},
	"Mac15,10":       {Name: `MacBook Pro 14" (M3 Max, 2023)`, Year: 2023, MSRP: 2999},
	"Mac15,7":        {Name: `MacBook Pro 16" (M3 Pro, 2023)`, Year: 2023, MSRP: 2499},
	"Mac15,9":        {Name: `MacBook Pro 16" (M3 Max, 2023)`, Year: 2023, MSRP: 3499},
	"Mac15,11":       {Name: `MacBook Pro 16" (M3 Max, 2023)`, Year: 2023, MSRP: 3499},
	"Mac14,5":        {Name: `MacBook Pro 14" (M2 Pro, 2023)`, Year: 2023, MSRP: 1999},
	"Mac14,9":        {Name: `MacBook Pro 14" (M2 Max, 2023)`, Year: 2023, MSRP: 2999},
	"Mac14,6":        {Name: `MacBook Pro 16" (M2 Pro, 2023)`, Year: 2023, MSRP: 2499},
	"Mac14,10":       {Name: `MacBook Pro 16" (M2 Max, 2023)`, Year: 2023, MSRP: 3499},
	"Mac14,7":        {Name: `MacBook Pro 13" (M2, 2022)`, Year: 2022, MSRP: 1299},
	"MacBookPro18,1": {Name: `MacBook Pro 16" (M1 Pro, 2021)`, Year: 2021, MSRP: 2499},
	"MacBookPro18,2": {Name: `MacBook Pro 16" (M1 Max, 2021)`, Year: 2021, MSRP: 3499},
	"MacBookPro18,3": {Name: `MacBook Pro 14" (M1 Pro, 2021)`, Year: 2021, MSRP: 1999},
	"MacBookPro18,4": {Name: `MacBook Pro 14" (M1 Max, 2021)`, Year: 2021, MSRP: 2999},
	"MacBookPro17,1": {Name: `MacBook Pro 13" (M1, 2020)`, Year: 2020, MSRP: 1299},

	// MacBook Pro, Intel
	"MacBookPro16,1": {Name: `MacBook Pro 16" (Intel, 2019)`, Year: 2019, MSRP: 2399},
	"MacBookPro16,2": {Name: `MacBook Pro 13" (Intel, 2020)`, Year: 2020, MSRP: 1799},
	"MacBookPro16,3": {Name: `MacBook Pro 13" (Intel, 2020)`, Year: 2020, MSRP: 1299},
	"MacBookPro16,4": {Name: `MacBook Pro 16" (Intel, 2020)`, Year: 2020, MSRP: 2399},
	"MacBookPro15,1": {Name: `MacBook Pro 15" (Intel, 2019)`, Year: 2019, MSRP: 2399},
	"MacBookPro15,2": {Name: `MacBook Pro 13" (Intel, 2019)`, Year: 2019, MSRP: 1799},
	"MacBookPro15,3": {Name: `MacBook Pro 15" (Intel, 2019)`, Year: 2019, MSRP: 2799},
	"MacBookPro15,4": {Name: `MacBook Pro 13" (Intel, 2019)`, Year: 2019, MSRP: 1299},
	"MacBookPro14,1": {Name: `MacBook Pro 13" (Intel, 2017)`, Year: 2017, MSRP: 1299},
	"MacBookPro14,2": {Name: `MacBook Pro 13" (Intel, 2017)`, Year: 2017, MSRP: 1799},
	"MacBookPro14,3": {Name: `MacBook Pro 15" (Intel, 2017)`, Year: 2017, MSRP: 2399},

	// iMac
	"Mac16,2":    {Name: `iMac 24" (M4, 2024)`, Year: 2024, MSRP: 1299},
	"Mac16,3":    {Name: `iMac 24" (M4, 2024)`, Year: 2024, MSRP: 1499},
	"Mac15,4":    {Name: `iMac 24" (M3, 2023)`, Year: 2023, MSRP: 1299},
	"Mac15,5":    {Name: `iMac 24" (M3, 2023)`, Year: 2023, MSRP: 1499},
	"iMac21,1":   {Name: `iMac 24" (M1, 2021)`, Year: 2021, MSRP: 1299},
	"iMac21,2":   {Name: `iMac 24" (M1, 2021)`, Year: 2021, MSRP: 1499},
	"iMac20,1":   {Name: `iMac 27" (Intel, 2020)`, Year: 2020, MSRP: 1799},
	"iMac20,2":   {Name: `iMac 27" (Intel, 2020)`, Year: 2020, MSRP: 1999},
	"iMac19,1":   {Name: `iMac 27" (Intel, 2019)`, Year: 2019, MSRP: 1799},
	"iMac19,2":   {Name: `iMac 21.5" (Intel, 2019)`, Year: 2019, MSRP: 1299},
	"iMac18,1":   {Name: `iMac 21.5" (Intel, 2017)`, Year: 2017, MSRP: 1099},
	"iMac18,2":   {Name: `iMac 21.5" 4K (Intel, 2017)`, Year: 2017, MSRP: 1299},
	"iMac18,3":   {Name: `iMac 27" 5K (Intel, 2017)`, Year: 2017, MSRP: 1799},
	"iMac15,1":   {Name: `iMac 27" 5K (Intel, 2014)`, Year: 2014, MSRP: 2499},
	"iMacPro1,1": {Name: `iMac Pro 27" (Intel Xeon, 2017)`, Year: 2017, MSRP: 4999},

	// Mac mini
	"Mac16,10":   {Name: "Mac mini (M4, 2024)", Year: 2024, MSRP: 599},
	"Mac16,11":   {Name: "Mac mini (M4 Pro, 2024)", Year: 2024, MSRP: 1399},
	"Mac14,3":    {Name: "Mac mini (M2, 2023)", Year: 2023, MSRP: 599},
	"Mac14,12":   {Name: "Mac mini (M2 Pro, 2023)", Year: 2023, MSRP: 1299},
	"Macmini9,1": {Name: "Mac mini (M1, 2020)", Year: 2020, MSRP: 699},
	"Macmini8,1": {Name: "Mac mini (Intel, 2018)", Year: 2018, MSRP: 799},
	"Macmini7,1": {Name: "Mac mini (Intel, 2014)", Year: 2014, MSRP: 499},
	"Macmini6,1": {Name: "Mac mini (Intel, 2012)", Year: 2012, MSRP: 599},
	"Macmini6,2": {Name: "Mac mini (Intel, 2012)", Year: 2012, MSRP: 799},

	// Mac Studio, Mac Pro
	"Mac16,9":  {Name: "Mac Studio (M3 Ultra, 2025)", Year: 2025, MSRP: 3999},
	"Mac15,14": {Name: "Mac Studio (M3 Ultra, 2025)", Year: 2025, MSRP: 3999},
	"Mac14,13": {Name: "Mac Studio (M2 Max, 2023)", Year: 2023, MSRP: 1999},
	"Mac14,14": {Name: "Mac Studio (M2 Ultra, 2023)", Year: 2023, MSRP: 3999},
	"Mac13,1":  {Name: "Mac Studio (M1 Max, 2022)", Year: 2022, MSRP: 1999},
	"Mac13,2":  {Name: "Mac Studio (M1 Ultra, 2022)", Year: 2022, MSRP: 3999},
	"Mac14,8":  {Name: "Mac Pro (M2 Ultra, 2023)", Year: 2023, MSRP: 6999},
}

// lenovoPrefixes maps the 4 character Lenovo machine type to model info.
var lenovoPrefixes = map[string]ModelInfo{
	// ThinkPad X1 Carbon
	"21HM": {Name: "ThinkPad X1 Carbon Gen 11", Year: 2023, MSRP: 1649},
	"21HN": {Name: "ThinkPad X1 Carbon Gen 11", Year: 2023, MSRP: 1649},
	"21KC": {Name: "ThinkPad X1 Carbon Gen 12", Year: 2024, MSRP: 1699},
	"21KD": {Name: "ThinkPad X1 Carbon Gen 12", Year: 2024, MSRP: 1699},
	"21CB": {Name: "ThinkPad X1 Carbon Gen 10", Year: 2022, MSRP: 1549},
	"21CC": {Name: "ThinkPad X1 Carbon Gen 10", Year: 2022, MSRP: 1549},
	"20XW": {Name: "ThinkPad X1 Carbon Gen 9", Year: 2021, MSRP: 1429},
	"20XX": {Name: "ThinkPad X1 Carbon Gen 9", Year: 2021, MSRP: 1429},
	"20KH": {Name: "ThinkPad X1 Carbon Gen 6", Year: 2018, MSRP: 1399},
	"20KG": {Name: "ThinkPad X1 Carbon Gen 6", Year: 2018, MSRP: 1399},
	"20FB": {Name: "ThinkPad X1 Carbon Gen 4", Year: 2016, MSRP: 1299},
	"20FC": {Name: "ThinkPad X1 Carbon Gen 4", Year: 2016, MSRP: 1299},

	// ThinkPad X1 Yoga
	"21JR": {Name: "ThinkPad X1 Yoga Gen 8", Year: 2023, MSRP: 1749},
	"21JS": {Name: "ThinkPad X1 Yoga Gen 8", Year: 2023, MSRP: 1749},
	"21CD": {Name: "ThinkPad X1 Yoga Gen 7", Year: 2022, MSRP: 1649},
	"21CE": {Name: "ThinkPad X1 Yoga Gen 7", Year: 2022, MSRP: 1649},

	// ThinkPad P workstations
	"21HK": {Name: "ThinkPad P16s Gen 2", Year: 2023, MSRP: 1399},
	"21HL": {Name: "ThinkPad P16s Gen 2", Year: 2023, MSRP: 1399},
	"21KS": {Name: "ThinkPad P16s Gen 3", Year: 2024, MSRP: 1499},
	"21KT": {Name: "ThinkPad P16s Gen 3", Year: 2024, MSRP: 1499},
	"21H3": {Name: "ThinkPad P1 Gen 6", Year: 2023, MSRP: 2299},
	"21H4": {Name: "ThinkPad P1 Gen 6", Year: 2023, MSRP: 2299},
	"21NS": {Name: "ThinkPad P1 Gen 7", Year: 2024, MSRP: 2499},
	"21NT": {Name: "ThinkPad P1 Gen 7", Year: 2024, MSRP: 2499},

	// ThinkPad T, L, E, X
	"21MC": {Name: "ThinkPad T14 Gen 5", Year: 2024, MSRP: 1199},
	"21MD": {Name: "ThinkPad T14 Gen 5", Year: 2024, MSRP: 1199},
	"21DJ": {Name: "ThinkPad T14 Gen 4", Year: 2023, MSRP: 1099},
	"21DK": {Name: "ThinkPad T14 Gen 4", Year: 2023, MSRP: 1099},
	"20UN": {Name: "ThinkPad T14 Gen 1", Year: 2020, MSRP: 899},
	"20UD": {Name: "ThinkPad T14 Gen 1", Year: 2020, MSRP: 899},
	"21H1": {Name: "ThinkPad L14 Gen 4", Year: 2023, MSRP: 799},
	"21H2": {Name: "ThinkPad L14 Gen 4", Year: 2023, MSRP: 799},
	"21JN": {Name: "ThinkPad E16 Gen 1", Year: 2023, MSRP: 749},
	"21JM": {Name: "ThinkPad E16 Gen 1", Year: 2023, MSRP: 749},
	"20W6": {Name: "ThinkPad X13 Gen 2", Year: 2021, MSRP: 1099},
	"20WK": {Name: "ThinkPad X13 Gen 2", Year: 2021, MSRP: 1099},

	// ThinkStation, IdeaPad
	"30FM": {Name: "ThinkStation P360 Ultra", Year: 2022, MSRP: 1699},
	"30FN": {Name: "ThinkStation P360 Ultra", Year: 2022, MSRP: 1699},
	"83A4": {Name: "IdeaPad Slim 5", Year: 2023, MSRP: 699},
	"83A5": {Name: "IdeaPad Slim 5", Year: 2023, MSRP: 699},
}

// dellModels maps Dell marketing names as reported by the management platforms.
var dellModels = map[string]ModelInfo{
	"Latitude 5320":                      {Name: "Dell Latitude 5320", Year: 2021, MSRP: 1199},
	"Latitude 5550":                      {Name: "Dell Latitude 5550", Year: 2024, MSRP: 1349},
	"Latitude 7320":                      {Name: "Dell Latitude 7320", Year: 2021, MSRP: 1549},
	"OptiPlex 9020 AIO":                  {Name: "Dell OptiPlex 9020 All-in-One", Year: 2014, MSRP: 999},
	"OptiPlex 7080":                      {Name: "Dell OptiPlex 7080", Year: 2020, MSRP: 899},
	"Dell Inc. OptiPlex Micro Plus 7020": {Name: "Dell OptiPlex Micro Plus 7020", Year: 2024, MSRP: 999},
	"Dell Inc. OptiPlex Micro 7010":      {Name: "Dell OptiPlex Micro 7010", Year: 2023, MSRP: 849},
	"Inspiron 16 5620":                   {Name: "Dell Inspiron 16 5620", Year: 2022, MSRP: 799},
}

var surfaceModels = map[string]ModelInfo{
	"Surface Pro":    {Name: "Microsoft Surface Pro", Year: 2017, MSRP: 799},
	"Surface Pro 8":  {Name: "Microsoft Surface Pro 8", Year: 2021, MSRP: 1099},
	"Surface Pro 9":  {Name: "Microsoft Surface Pro 9", Year: 2022, MSRP: 999},
	"Surface Pro 10": {Name: "Microsoft Surface Pro 10", Year: 2024, MSRP: 1199},
}

// surfaceGenerations is the release year of Surface Pro generations missing from surfaceModels.
var surfaceGenerations = map[int]int{
	6:  2018,
	7:  2019,
	8:  2021,
	9:  2022,
	10: 2024,
	11: 2024,
}

// dellKeywords identify a Dell device from its reported model string.
var dellKeywords = []string{"Latitude", "OptiPlex", "Inspiron", "Dell"}

const surfaceKeyword = "Surface"
