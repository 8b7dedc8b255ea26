package datatype

// Variable names of the standard types.
const (
	VarUnknown = "unknown"
	VarOther   = "other"

	VarDatasetID     = "expocode"
	VarDatasetName   = "dataset_name"
	VarPlatformName  = "platform_name"
	VarPlatformType  = "platform_type"
	VarOrganization  = "organization"
	VarInvestigators = "investigators"
	VarWestmostLon   = "westmost_lon"
	VarEastmostLon   = "eastmost_lon"
	VarSouthmostLat  = "southmost_lat"
	VarNorthmostLat  = "northmost_lat"
	VarTimeStart     = "time_coverage_start"
	VarTimeEnd       = "time_coverage_end"
	VarStatus        = "status"
	VarVersion       = "version"
	VarRegionIDs     = "all_region_ids"
	VarQCFlag        = "qc_flag"

	VarSampleNumber = "sample_number"
	VarTimestamp    = "date_time"
	VarDate         = "date"
	VarYear         = "year"
	VarMonth        = "month"
	VarDay          = "day"
	VarTimeOfDay    = "time_of_day"
	VarHour         = "hour"
	VarMinute       = "minute"
	VarSecond       = "second"
	VarDayOfYear    = "day_of_year"
	VarSecOfDay     = "sec_of_day"
	VarLongitude    = "longitude"
	VarLatitude     = "latitude"
	VarSampleDepth  = "sample_depth"
	VarTime         = "time"

	VarTemperature = "temp"
	VarSalinity    = "sal"
	VarPressure    = "pressure"
	VarWindSpeed   = "wind_speed"
	VarXCO2        = "xco2"
	VarWOCEXCO2    = "WOCE_xco2"
	VarCommentXCO2 = "COMMENT_xco2"
	VarAutocheck   = "WOCE_AUTOCHECK"
)

// Units of the standard types.
const (
	TimeUnits = "seconds since 1970-01-01T00:00:00Z"

	DayOfYearJan1Is1 = "Jan1=1.0"
	DayOfYearJan1Is0 = "Jan1=0.0"
)

// Timestamp, date and time-of-day units name the order of the fields.
var (
	TimestampUnits = []string{
		"yyyy-mm-dd hh:mm:ss",
		"mm-dd-yyyy hh:mm:ss",
		"dd-mm-yyyy hh:mm:ss",
	}
	DateUnits = []string{
		"yyyy-mm-dd",
		"mm-dd-yyyy",
		"dd-mm-yyyy",
		"yyyymmdd",
	}
	TimeOfDayUnits = []string{
		"hh:mm:ss",
		"hhmmss",
	}
	LongitudeUnits = []string{
		"deg E", "deg min E", "deg min sec E", "DDD.MMSSsss E",
		"deg W", "deg min W", "deg min sec W", "DDD.MMSSsss W",
	}
	LatitudeUnits = []string{
		"deg N", "deg min N", "deg min sec N", "DDD.MMSSsss N",
		"deg S", "deg min S", "deg min sec S", "DDD.MMSSsss S",
	}
)

const (
	catIdentifier = "Identifier"
	catLocation   = "Location"
	catTime       = "Time"
	catTemp       = "Temperature"
	catSalinity   = "Salinity"
	catPressure   = "Pressure"
	catWind       = "Wind"
	catCO2        = "CO2"
	catQuality    = "Quality"
	catOther      = "Other"
)

var (
	unknownSpec = Spec{
		Kind: KindString, VarName: VarUnknown, SortOrder: -1,
		DisplayName: "(unknown)", Description: "unknown type that must be assigned",
	}
	otherSpec = Spec{
		Kind: KindString, VarName: VarOther, SortOrder: 0,
		DisplayName: "other", Description: "supplementary data that is not checked",
		CategoryName: catOther,
	}
	datasetIDSpec = Spec{
		Kind: KindString, VarName: VarDatasetID, SortOrder: 100,
		DisplayName: "expocode", Description: "unique identifier for the dataset",
		Critical: true, CategoryName: catIdentifier,
	}
	datasetNameSpec = Spec{
		Kind: KindString, VarName: VarDatasetName, SortOrder: 101,
		DisplayName: "dataset name", Description: "name of the dataset",
		CategoryName: catIdentifier,
	}
	platformNameSpec = Spec{
		Kind: KindString, VarName: VarPlatformName, SortOrder: 102,
		DisplayName: "platform name", Description: "name of the platform",
		CategoryName: catIdentifier, StandardName: "platform_name",
	}
	platformTypeSpec = Spec{
		Kind: KindString, VarName: VarPlatformType, SortOrder: 103,
		DisplayName: "platform type", Description: "type of the platform",
		CategoryName: catIdentifier,
	}
	organizationSpec = Spec{
		Kind: KindString, VarName: VarOrganization, SortOrder: 104,
		DisplayName: "organization", Description: "organization of the investigators",
		CategoryName: catIdentifier,
	}
	investigatorsSpec = Spec{
		Kind: KindString, VarName: VarInvestigators, SortOrder: 105,
		DisplayName: "investigators", Description: "investigators of the dataset",
		CategoryName: catIdentifier,
	}

	sampleNumberSpec = Spec{
		Kind: KindInt, VarName: VarSampleNumber, SortOrder: 200,
		DisplayName: "sample number", Description: "sequence number of the sample",
		CategoryName: catIdentifier, MinQuestionable: IntValue(1),
	}
	timestampSpec = Spec{
		Kind: KindString, VarName: VarTimestamp, SortOrder: 201,
		DisplayName: "date time", Description: "date and time of the sample",
		Critical: true, Units: TimestampUnits, CategoryName: catTime,
	}
	dateSpec = Spec{
		Kind: KindString, VarName: VarDate, SortOrder: 202,
		DisplayName: "date", Description: "date of the sample",
		Critical: true, Units: DateUnits, CategoryName: catTime,
	}
	yearSpec = Spec{
		Kind: KindInt, VarName: VarYear, SortOrder: 203,
		DisplayName: "year", Description: "year of the sample",
		Critical: true, CategoryName: catTime,
		MinQuestionable: IntValue(1900), MinAcceptable: IntValue(1950),
		MaxAcceptable: IntValue(2050), MaxQuestionable: IntValue(2100),
	}
	monthSpec = Spec{
		Kind: KindInt, VarName: VarMonth, SortOrder: 204,
		DisplayName: "month of year", Description: "month of the sample",
		Critical: true, CategoryName: catTime,
		MinQuestionable: IntValue(1), MaxQuestionable: IntValue(12),
	}
	daySpec = Spec{
		Kind: KindInt, VarName: VarDay, SortOrder: 205,
		DisplayName: "day of month", Description: "day of the month of the sample",
		Critical: true, CategoryName: catTime,
		MinQuestionable: IntValue(1), MaxQuestionable: IntValue(31),
	}
	timeOfDaySpec = Spec{
		Kind: KindString, VarName: VarTimeOfDay, SortOrder: 206,
		DisplayName: "time of day", Description: "time of day of the sample",
		Critical: true, Units: TimeOfDayUnits, CategoryName: catTime,
	}
	hourSpec = Spec{
		Kind: KindInt, VarName: VarHour, SortOrder: 207,
		DisplayName: "hour of day", Description: "hour of the sample",
		Critical: true, CategoryName: catTime,
		MinQuestionable: IntValue(0), MaxQuestionable: IntValue(23),
	}
	minuteSpec = Spec{
		Kind: KindInt, VarName: VarMinute, SortOrder: 208,
		DisplayName: "minute of hour", Description: "minute of the sample",
		Critical: true, CategoryName: catTime,
		MinQuestionable: IntValue(0), MaxQuestionable: IntValue(59),
	}
	secondSpec = Spec{
		Kind: KindDouble, VarName: VarSecond, SortOrder: 209,
		DisplayName: "second of minute", Description: "second of the sample",
		Critical: true, CategoryName: catTime,
		MinQuestionable: DoubleValue(0), MaxQuestionable: DoubleValue(60),
	}
	dayOfYearSpec = Spec{
		Kind: KindDouble, VarName: VarDayOfYear, SortOrder: 210,
		DisplayName: "day of year", Description: "fractional day of the year of the sample",
		Critical: true, Units: []string{DayOfYearJan1Is1, DayOfYearJan1Is0}, CategoryName: catTime,
		MinQuestionable: DoubleValue(1), MaxQuestionable: DoubleValue(367),
	}
	secOfDaySpec = Spec{
		Kind: KindDouble, VarName: VarSecOfDay, SortOrder: 211,
		DisplayName: "second of day", Description: "seconds since midnight of the sample",
		Critical: true, Units: []string{"sec"}, CategoryName: catTime,
		MinQuestionable: DoubleValue(0), MaxQuestionable: DoubleValue(86400),
	}
	longitudeSpec = Spec{
		Kind: KindDouble, VarName: VarLongitude, SortOrder: 212,
		DisplayName: "longitude", Description: "sample longitude",
		Critical: true, Units: LongitudeUnits, StandardName: "longitude",
		CategoryName: catLocation, FileStdUnit: "degrees_east",
		MinQuestionable: DoubleValue(-360), MinAcceptable: DoubleValue(-180),
		MaxAcceptable: DoubleValue(360), MaxQuestionable: DoubleValue(360),
	}
	latitudeSpec = Spec{
		Kind: KindDouble, VarName: VarLatitude, SortOrder: 213,
		DisplayName: "latitude", Description: "sample latitude",
		Critical: true, Units: LatitudeUnits, StandardName: "latitude",
		CategoryName: catLocation, FileStdUnit: "degrees_north",
		MinQuestionable: DoubleValue(-90), MaxQuestionable: DoubleValue(90),
	}
	sampleDepthSpec = Spec{
		Kind: KindDouble, VarName: VarSampleDepth, SortOrder: 214,
		DisplayName: "sample depth", Description: "sample depth below the surface",
		Critical: true, Units: []string{"meters", "km", "feet", "fathoms"},
		StandardName: "depth", CategoryName: catLocation, FileStdUnit: "m",
		MinQuestionable: DoubleValue(0), MinAcceptable: DoubleValue(0),
		MaxAcceptable: DoubleValue(12000), MaxQuestionable: DoubleValue(16000),
	}
	timeSpec = Spec{
		Kind: KindDouble, VarName: VarTime, SortOrder: 215,
		DisplayName: "time", Description: "sample time",
		Units: []string{TimeUnits}, StandardName: "time", CategoryName: catTime,
	}

	temperatureSpec = Spec{
		Kind: KindDouble, VarName: VarTemperature, SortOrder: 300,
		DisplayName: "temperature", Description: "sea water temperature",
		Units: []string{"degC", "degF", "K"}, StandardName: "sea_water_temperature",
		CategoryName: catTemp, FileStdUnit: "degrees_C",
		MinQuestionable: DoubleValue(-10), MinAcceptable: DoubleValue(-2),
		MaxAcceptable: DoubleValue(40), MaxQuestionable: DoubleValue(50),
	}
	salinitySpec = Spec{
		Kind: KindDouble, VarName: VarSalinity, SortOrder: 301,
		DisplayName: "salinity", Description: "sea water salinity",
		Units: []string{"PSU"}, StandardName: "sea_water_salinity", CategoryName: catSalinity,
		MinQuestionable: DoubleValue(0), MinAcceptable: DoubleValue(5),
		MaxAcceptable: DoubleValue(42), MaxQuestionable: DoubleValue(50),
	}
	pressureSpec = Spec{
		Kind: KindDouble, VarName: VarPressure, SortOrder: 302,
		DisplayName: "pressure", Description: "atmospheric pressure",
		Units: []string{"hPa", "kPa", "mmHg", "PSI", "atm"}, StandardName: "air_pressure",
		CategoryName: catPressure,
		MinQuestionable: DoubleValue(800), MinAcceptable: DoubleValue(900),
		MaxAcceptable: DoubleValue(1100), MaxQuestionable: DoubleValue(1200),
	}
	windSpeedSpec = Spec{
		Kind: KindDouble, VarName: VarWindSpeed, SortOrder: 303,
		DisplayName: "wind speed", Description: "wind speed",
		Units: []string{"m/s", "knots", "km/h", "mph"}, StandardName: "wind_speed",
		CategoryName: catWind,
		MinQuestionable: DoubleValue(0), MinAcceptable: DoubleValue(0),
		MaxAcceptable: DoubleValue(50), MaxQuestionable: DoubleValue(80),
	}
	xco2Spec = Spec{
		Kind: KindDouble, VarName: VarXCO2, SortOrder: 304,
		DisplayName: "xCO2", Description: "mole fraction of CO2 in equilibrated air",
		Units: []string{"umol/mol", "ppm", "mmol/mol", "nmol/mol"}, CategoryName: catCO2,
		MinQuestionable: DoubleValue(0), MinAcceptable: DoubleValue(80),
		MaxAcceptable: DoubleValue(1200), MaxQuestionable: DoubleValue(10000),
	}
	woceXCO2Spec = Spec{
		Kind: KindChar, VarName: VarWOCEXCO2, SortOrder: 305,
		DisplayName: "WOCE xCO2", Description: "WOCE flag for xCO2",
		CategoryName: catQuality,
	}
	commentXCO2Spec = Spec{
		Kind: KindString, VarName: VarCommentXCO2, SortOrder: 306,
		DisplayName: "comment xCO2", Description: "comment on the xCO2 WOCE flag",
		CategoryName: catQuality,
	}
	autocheckSpec = Spec{
		Kind: KindChar, VarName: VarAutocheck, SortOrder: 400,
		DisplayName: "WOCE autocheck", Description: "WOCE flag from automated checks",
		CategoryName: catQuality,
	}

	westmostLonSpec = Spec{
		Kind: KindDouble, VarName: VarWestmostLon, SortOrder: 500,
		DisplayName: "westmost longitude", Description: "westmost longitude of the samples",
		Units: []string{"degrees_east"}, CategoryName: catLocation,
		MinQuestionable: DoubleValue(-540), MaxQuestionable: DoubleValue(540),
	}
	eastmostLonSpec = Spec{
		Kind: KindDouble, VarName: VarEastmostLon, SortOrder: 501,
		DisplayName: "eastmost longitude", Description: "eastmost longitude of the samples",
		Units: []string{"degrees_east"}, CategoryName: catLocation,
		MinQuestionable: DoubleValue(-540), MaxQuestionable: DoubleValue(540),
	}
	southmostLatSpec = Spec{
		Kind: KindDouble, VarName: VarSouthmostLat, SortOrder: 502,
		DisplayName: "southmost latitude", Description: "southmost latitude of the samples",
		Units: []string{"degrees_north"}, CategoryName: catLocation,
		MinQuestionable: DoubleValue(-90), MaxQuestionable: DoubleValue(90),
	}
	northmostLatSpec = Spec{
		Kind: KindDouble, VarName: VarNorthmostLat, SortOrder: 503,
		DisplayName: "northmost latitude", Description: "northmost latitude of the samples",
		Units: []string{"degrees_north"}, CategoryName: catLocation,
		MinQuestionable: DoubleValue(-90), MaxQuestionable: DoubleValue(90),
	}
	timeStartSpec = Spec{
		Kind: KindDouble, VarName: VarTimeStart, SortOrder: 504,
		DisplayName: "beginning time", Description: "earliest sample time",
		Units: []string{TimeUnits}, CategoryName: catTime,
	}
	timeEndSpec = Spec{
		Kind: KindDouble, VarName: VarTimeEnd, SortOrder: 505,
		DisplayName: "ending time", Description: "latest sample time",
		Units: []string{TimeUnits}, CategoryName: catTime,
	}
	statusSpec = Spec{
		Kind: KindString, VarName: VarStatus, SortOrder: 506,
		DisplayName: "status", Description: "processing status of the dataset",
		CategoryName: catOther,
	}
	versionSpec = Spec{
		Kind: KindString, VarName: VarVersion, SortOrder: 507,
		DisplayName: "version", Description: "version of the dataset",
		CategoryName: catOther,
	}
	regionIDsSpec = Spec{
		Kind: KindString, VarName: VarRegionIDs, SortOrder: 508,
		DisplayName: "region IDs", Description: "IDs of all regions the samples are in",
		CategoryName: catLocation,
	}
	qcFlagSpec = Spec{
		Kind: KindChar, VarName: VarQCFlag, SortOrder: 509,
		DisplayName: "QC flag", Description: "quality-control flag of the dataset",
		CategoryName: catQuality,
	}
)

// UserTypeSpecs returns the types users may assign to columns of
// uploaded data.
func UserTypeSpecs() []Spec {
	return []Spec{
		unknownSpec, otherSpec, datasetIDSpec, datasetNameSpec,
		platformNameSpec, platformTypeSpec, organizationSpec,
		investigatorsSpec, sampleNumberSpec, timestampSpec, dateSpec, yearSpec, monthSpec,
		daySpec, timeOfDaySpec, hourSpec, minuteSpec, secondSpec,
		dayOfYearSpec, secOfDaySpec, longitudeSpec, latitudeSpec,
		sampleDepthSpec, temperatureSpec, salinitySpec, pressureSpec,
		windSpeedSpec, xco2Spec, woceXCO2Spec, commentXCO2Spec,
	}
}

// MetadataTypeSpecs returns the types stored as dataset metadata in files.
func MetadataTypeSpecs() []Spec {
	return []Spec{
		datasetIDSpec, datasetNameSpec, platformNameSpec, platformTypeSpec,
		organizationSpec, investigatorsSpec, westmostLonSpec, eastmostLonSpec,
		southmostLatSpec, northmostLatSpec, timeStartSpec, timeEndSpec,
		statusSpec, versionSpec, regionIDsSpec, qcFlagSpec,
	}
}

// DataTypeSpecs returns the types stored as data columns in files.
func DataTypeSpecs() []Spec {
	return []Spec{
		sampleNumberSpec, yearSpec, monthSpec, daySpec, hourSpec,
		minuteSpec, secondSpec, longitudeSpec, latitudeSpec,
		sampleDepthSpec, timeSpec, temperatureSpec, salinitySpec,
		pressureSpec, windSpeedSpec, xco2Spec, woceXCO2Spec, autocheckSpec,
	}
}

// UserTypes returns a registry of UserTypeSpecs.
func UserTypes() (*Registry, error) {
	return registryOf(UserTypeSpecs())
}

// MetadataTypes returns a registry of MetadataTypeSpecs.
func MetadataTypes() (*Registry, error) {
	return registryOf(MetadataTypeSpecs())
}

// DataTypes returns a registry of DataTypeSpecs.
func DataTypes() (*Registry, error) {
	return registryOf(DataTypeSpecs())
}

func registryOf(specs []Spec) (*Registry, error) {
	r := NewRegistry()
	if err := r.RegisterAll(specs...); err != nil {
		return nil, err
	}
	return r, nil
}
