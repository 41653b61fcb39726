package lookup

import (
	"fmt"
	"math"

	"github.com/cloud66-oss/geolookup/utils"
	"github.com/jinzhu/copier"
)

// weight of full agreement on top of the base prior
const agreementWeight = 0.2

// Consolidate picks the record with the highest accuracy as the base and
// raises its score by how much the other records agree with it on
// country, city and ISP. The input records are left untouched.
func Consolidate(records []*utils.IPInfo) (*utils.IPInfo, error) {
	valid := make([]*utils.IPInfo, 0, len(records))

	for _, v := range records {
		if v != nil {
			valid = append(valid, v)
		}
	}

	if len(valid) == 0 {
		return nil, utils.NoValidResultsError{}
	}

	base := valid[0]
	for _, v := range valid[1:] {
		if v.AccuracyScore > base.AccuracyScore {
			base = v
		}
	}

	countries, cities, isps := 0, 0, 0
	postalCode := ""

	for _, v := range valid {
		if v.CountryCode == base.CountryCode {
			countries++
		}

		if v.City == base.City {
			cities++
		}

		if v.ISP == base.ISP {
			isps++
		}

		if postalCode == "" && v.PostalCode != "" {
			postalCode = v.PostalCode
		}
	}

	agreement := float64(countries+cities+isps) / float64(3*len(valid))

	rv := &utils.IPInfo{}
	if err := copier.Copy(rv, base); err != nil {
		return nil, fmt.Errorf("cannot copy the base record: %w", err)
	}

	rv.AccuracyScore = math.Min(base.AccuracyScore+agreement*agreementWeight, 1.0)
	rv.PostalCode = postalCode
	rv.CloudProvider, _ = ClassifyCloudProvider(base.ISP, base.Org, base.ASName)

	return rv, nil
}
