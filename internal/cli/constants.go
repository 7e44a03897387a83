package cli

// ProgramName is the binary name used in logs and the user agent.
const ProgramName = "caroline-download"

// Description is the long help text of the root command.
const Description = `Download data for processing with CAROLINE.

Downloads Sentinel-1 SLC products from ASF (Alaska Satellite Facility) into a
deterministic directory tree, verifies their checksums and stores the product
metadata next to each file. Authentication uses an Earthdata bearer token or
the Earthdata Login entry in .netrc.`
