// Package patientdir provides an embeddable Go client for the patient
// directory: the same search, filter, sort and pagination engine the HTTP
// service runs, over a JSON file, a Redis key or records held in memory.
//
//	client, _ := patientdir.New(ctx, patientdir.WithFile("data/data.json"))
//	defer client.Close()
//
//	page, _ := client.Query().
//	    Search("jo").In("patient_name", "contact").
//	    Where("medical_issue", "fever").
//	    AgeRange("18-65").
//	    SortBy("age", patientdir.Desc).
//	    Page(2).Limit(10).
//	    Do(ctx)
//
// Requests never fail on bad input: out-of-range paging values are clamped
// and unknown fields simply match nothing.
package patientdir
