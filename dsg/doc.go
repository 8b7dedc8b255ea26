/*
Package dsg reads and writes CF-1.6 discrete sampling geometry files of
the trajectory feature type, stored in the NetCDF3 classic format.

A file holds one trajectory. Dataset metadata are variables over the
trajectory dimension, and sample data are variables over the obs
dimension:

	dimensions:
		trajectory = 1 ;
		string_length = 32 ;
		char_length = 1 ;
		obs = 1440 ;
	variables:
		int num_obs(trajectory) ;
			num_obs:sample_dimension = "obs" ;
		char expocode(trajectory, string_length) ;
			expocode:cf_role = "trajectory_id" ;
		double longitude(obs) ;
		...

Missing values are stored as sentinels: a blank for characters, -99 for
integers and -999 for doubles. Strings are NUL-padded to string_length,
which is the longest metadata string rounded up to a multiple of 32.

Typical use:

	meta := dsg.NewMetadata(metaTypes)
	meta.SetByName(datatype.VarDatasetID, datatype.StringValue("49P120101218"))
	meta.UpdateExtents(data)
	f := dsg.New("49P120101218.nc")
	err := f.Create(meta, data)
*/
package dsg
