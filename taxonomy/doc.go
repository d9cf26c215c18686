/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package taxonomy is the metadata model of dirpx error taxonomies.
//
// A taxonomy has a type-level Header (a code prefix and the name of the
// app_type its app codes parse into) and one Variant record per failure
// case (code suffix, app code, optional client message). Metadata can be
// declared in two ways:
//
//   - as errinfo struct tags on the variant types themselves (see Meta and
//     VariantOf), which is what derive.New reads;
//   - as a YAML Schema (see LoadSchema), which is what the errcodegen
//     generator and derive.FromTaxonomy read.
//
// Either way, Taxonomy.Validate is the single gate: a taxonomy with a missing
// prefix, app_type, code or app_code, or with two variants sharing a full
// code, is rejected before it can be used.
package taxonomy
